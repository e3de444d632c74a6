package handlers

import (
	"encoding/json"
	"net/http"

	"starwars/pkg/utils"
)

// respondJSON sends a JSON response
func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		json.NewEncoder(w).Encode(data)
	}
}

// decodeAndValidate reads the JSON body into req and checks its validation
// tags. The returned message is what the client gets back with a 400.
func decodeAndValidate(r *http.Request, req interface{}) (string, bool) {
	if err := json.NewDecoder(r.Body).Decode(req); err != nil {
		return "Invalid request body: " + err.Error(), false
	}
	if err := utils.ValidateStruct(req); err != nil {
		return err.Error(), false
	}
	return "", true
}
