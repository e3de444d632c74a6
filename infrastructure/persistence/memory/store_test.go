package memory

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"starwars/domain/ports"
	"starwars/infrastructure/persistence/abstractions"
	pkgerrors "starwars/pkg/errors"
)

type clock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *clock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func newStores(c *clock) (*Store[ports.FilmFields], *Store[ports.PlanetFields]) {
	films := NewStore(abstractions.FilmCollection(), zap.NewNop(), WithClock(c.Now))
	planets := NewStore(abstractions.PlanetCollection(), zap.NewNop(), WithClock(c.Now))
	films.SetPeer(planets)
	planets.SetPeer(films)
	return films, planets
}

func TestStore_PersistAndGet(t *testing.T) {
	ctx := context.Background()
	c := &clock{now: time.Date(2024, 5, 4, 12, 0, 0, 0, time.UTC)}
	films, planets := newStores(c)

	tatooine, err := planets.Persist(ctx, ports.PlanetFields{Name: "Tatooine", Films: []string{}})
	require.NoError(t, err)

	id, err := films.Persist(ctx, ports.FilmFields{Title: "A New Hope", Planets: []string{tatooine}})
	require.NoError(t, err)
	assert.NotEmpty(t, id)

	doc, err := films.GetByID(ctx, id)
	require.NoError(t, err)
	require.NotNil(t, doc)
	assert.Equal(t, "A New Hope", doc.Fields.Title)
	assert.Equal(t, []string{tatooine}, doc.Fields.Planets)
	assert.Equal(t, doc.Created, doc.Edited)
}

func TestStore_Persist_Duplicate(t *testing.T) {
	ctx := context.Background()
	films, _ := newStores(&clock{now: time.Now()})

	_, err := films.Persist(ctx, ports.FilmFields{Title: "A New Hope"})
	require.NoError(t, err)

	_, err = films.Persist(ctx, ports.FilmFields{Title: "A New Hope"})
	require.ErrorIs(t, err, pkgerrors.ErrDuplicateEntity)
	assert.Equal(t, "Film with title A New Hope already exists", pkgerrors.MessageOf(err))
}

func TestStore_Persist_References(t *testing.T) {
	ctx := context.Background()
	films, planets := newStores(&clock{now: time.Now()})

	hoth, err := planets.Persist(ctx, ports.PlanetFields{Name: "Hoth"})
	require.NoError(t, err)

	tests := []struct {
		name    string
		planets []string
		wantErr error
		wantMsg string
	}{
		{
			name:    "unknown planet",
			planets: []string{hoth, "3f2504e0-4f89-41d3-9a0c-0305e82c3301"},
			wantErr: pkgerrors.ErrInvalidReference,
			wantMsg: "One or more planets do not exist",
		},
		{
			name:    "repeated planet",
			planets: []string{hoth, hoth},
			wantErr: pkgerrors.ErrInvalidReference,
			wantMsg: "One or more planets do not exist",
		},
		{
			name:    "malformed planet id",
			planets: []string{"x"},
			wantErr: pkgerrors.ErrInvalidIdentifier,
			wantMsg: "x is not a valid planet id.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := films.Persist(ctx, ports.FilmFields{Title: "Empire " + tt.name, Planets: tt.planets})
			require.ErrorIs(t, err, tt.wantErr)
			assert.Equal(t, tt.wantMsg, pkgerrors.MessageOf(err))
		})
	}
}

func TestStore_Update(t *testing.T) {
	ctx := context.Background()
	c := &clock{now: time.Date(2024, 5, 4, 12, 0, 0, 0, time.UTC)}
	films, _ := newStores(c)

	id, err := films.Persist(ctx, ports.FilmFields{Title: "Star Wars"})
	require.NoError(t, err)
	before, err := films.GetByID(ctx, id)
	require.NoError(t, err)

	c.Advance(time.Minute)
	director := "George Lucas"
	require.NoError(t, films.Update(ctx, id, ports.FilmFields{Title: "A New Hope", Director: &director}))

	after, err := films.GetByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, before.Created, after.Created)
	assert.True(t, after.Edited.After(before.Edited))
	assert.Equal(t, "A New Hope", after.Fields.Title)
	assert.Equal(t, "George Lucas", *after.Fields.Director)

	// the old title is free again
	_, err = films.Persist(ctx, ports.FilmFields{Title: "Star Wars"})
	require.NoError(t, err)

	err = films.Update(ctx, id, ports.FilmFields{Title: "Star Wars"})
	require.ErrorIs(t, err, pkgerrors.ErrDuplicateEntity)
}

func TestStore_Update_AbsentIsNoop(t *testing.T) {
	films, _ := newStores(&clock{now: time.Now()})
	id := "6ba7b810-9dad-11d1-80b4-00c04fd430c8"

	require.NoError(t, films.Update(context.Background(), id, ports.FilmFields{Title: "Ghost"}))

	doc, err := films.GetByID(context.Background(), id)
	require.NoError(t, err)
	assert.Nil(t, doc)

	count, err := films.CountExisting(context.Background(), []string{id})
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestStore_GetByID_Malformed(t *testing.T) {
	films, _ := newStores(&clock{now: time.Now()})

	doc, err := films.GetByID(context.Background(), "not-a-valid-id")

	assert.Nil(t, doc)
	require.ErrorIs(t, err, pkgerrors.ErrInvalidIdentifier)
	assert.Equal(t, "not-a-valid-id is not a valid film id.", pkgerrors.MessageOf(err))
}

func TestStore_Remove(t *testing.T) {
	ctx := context.Background()
	films, _ := newStores(&clock{now: time.Now()})

	id, err := films.Persist(ctx, ports.FilmFields{Title: "A New Hope"})
	require.NoError(t, err)

	removed, err := films.Remove(ctx, id)
	require.NoError(t, err)
	assert.True(t, removed)

	removed, err = films.Remove(ctx, id)
	require.NoError(t, err)
	assert.False(t, removed)

	doc, err := films.GetByID(ctx, id)
	require.NoError(t, err)
	assert.Nil(t, doc)

	_, err = films.Persist(ctx, ports.FilmFields{Title: "A New Hope"})
	require.NoError(t, err)
}

func TestStore_CountExisting(t *testing.T) {
	ctx := context.Background()
	_, planets := newStores(&clock{now: time.Now()})

	hoth, err := planets.Persist(ctx, ports.PlanetFields{Name: "Hoth"})
	require.NoError(t, err)

	count, err := planets.CountExisting(ctx, []string{hoth, hoth, "6ba7b810-9dad-11d1-80b4-00c04fd430c8"})
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestStore_CanonicalizesIDs(t *testing.T) {
	ctx := context.Background()
	films, planets := newStores(&clock{now: time.Now()})

	hoth, err := planets.Persist(ctx, ports.PlanetFields{Name: "Hoth"})
	require.NoError(t, err)
	upper := strings.ToUpper(hoth)

	id, err := films.Persist(ctx, ports.FilmFields{
		Title:   "Empire",
		Planets: []string{upper},
	})
	require.NoError(t, err)

	for _, spelling := range []string{
		strings.ToUpper(id),
		strings.ReplaceAll(id, "-", ""),
		"{" + id + "}",
		"urn:uuid:" + id,
	} {
		doc, err := films.GetByID(ctx, spelling)
		require.NoError(t, err, spelling)
		require.NotNil(t, doc, spelling)
		assert.Equal(t, id, doc.ID)
		assert.Equal(t, []string{hoth}, doc.Fields.Planets)
	}

	// two spellings of one planet are a single reference
	_, err = films.Persist(ctx, ports.FilmFields{Title: "Jedi", Planets: []string{hoth, upper}})
	require.ErrorIs(t, err, pkgerrors.ErrInvalidReference)

	require.NoError(t, films.Update(ctx, strings.ToUpper(id), ports.FilmFields{Title: "The Empire Strikes Back"}))
	doc, err := films.GetByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "The Empire Strikes Back", doc.Fields.Title)

	removed, err := films.Remove(ctx, "urn:uuid:"+id)
	require.NoError(t, err)
	assert.True(t, removed)
}

func TestStore_DoesNotShareCallerSlices(t *testing.T) {
	ctx := context.Background()
	films, planets := newStores(&clock{now: time.Now()})

	hoth, err := planets.Persist(ctx, ports.PlanetFields{Name: "Hoth"})
	require.NoError(t, err)
	bespin, err := planets.Persist(ctx, ports.PlanetFields{Name: "Bespin"})
	require.NoError(t, err)

	input := []string{hoth}
	id, err := films.Persist(ctx, ports.FilmFields{Title: "Empire", Planets: input})
	require.NoError(t, err)
	input[0] = bespin

	doc, err := films.GetByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, []string{hoth}, doc.Fields.Planets)

	updated := []string{bespin}
	require.NoError(t, films.Update(ctx, id, ports.FilmFields{Title: "Empire", Planets: updated}))
	updated[0] = hoth

	doc, err = films.GetByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, []string{bespin}, doc.Fields.Planets)

	// returned documents are copies too
	doc.Fields.Planets[0] = hoth
	doc, err = films.GetByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, []string{bespin}, doc.Fields.Planets)
}

// failingResolver rejects every lookup
type failingResolver struct{ err error }

func (r failingResolver) CountExisting(context.Context, []string) (int, error) {
	return 0, r.err
}

func TestStore_SetPeer_ResolverError(t *testing.T) {
	films := NewStore(abstractions.FilmCollection(), zap.NewNop())
	films.SetPeer(failingResolver{err: errors.New("peer unavailable")})

	_, err := films.Persist(context.Background(), ports.FilmFields{
		Title:   "Empire",
		Planets: []string{"6ba7b810-9dad-11d1-80b4-00c04fd430c8"},
	})
	require.EqualError(t, err, "peer unavailable")
}

func TestStore_ConcurrentCrossReferences(t *testing.T) {
	ctx := context.Background()
	films, planets := newStores(&clock{now: time.Now()})

	hoth, err := planets.Persist(ctx, ports.PlanetFields{Name: "Hoth"})
	require.NoError(t, err)
	empire, err := films.Persist(ctx, ports.FilmFields{Title: "Empire"})
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			_ = films.Update(ctx, empire, ports.FilmFields{Title: "Empire", Planets: []string{hoth}})
		}()
		go func() {
			defer wg.Done()
			_ = planets.Update(ctx, hoth, ports.PlanetFields{Name: "Hoth", Films: []string{empire}})
		}()
	}
	wg.Wait()

	doc, err := films.GetByID(ctx, empire)
	require.NoError(t, err)
	assert.Equal(t, []string{hoth}, doc.Fields.Planets)
}
