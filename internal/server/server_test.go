package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/aryannaik/advocate-directory/internal/advocate"
	"github.com/aryannaik/advocate-directory/internal/client"
	"github.com/aryannaik/advocate-directory/internal/seed"
	"github.com/aryannaik/advocate-directory/internal/store"
)

func seedRows() []advocate.NewAdvocate {
	return []advocate.NewAdvocate{
		{FirstName: "Ann", LastName: "Lee", City: "Boston", Degree: "MD", Specialties: []string{"Oncology"}, YearsOfExperience: 4, PhoneNumber: 5551234567},
		{FirstName: "Bob", LastName: "Ray", City: "Austin", Degree: "PhD", Specialties: []string{"Cardiology"}, YearsOfExperience: 12, PhoneNumber: 5559876543},
		{FirstName: "Cy", LastName: "Fox", City: "Denver", Degree: "MSW", YearsOfExperience: 1, PhoneNumber: 5550001111},
	}
}

func newTestServer(t *testing.T, st store.Store) *httptest.Server {
	t.Helper()
	logger := zap.NewNop()
	loader := seed.NewLoader(st, seed.WithBatchSize(2), seed.WithLogger(logger))
	srv := httptest.NewServer(NewHandler(st, loader, seedRows, logger))
	t.Cleanup(srv.Close)
	return srv
}

func newFileStore(t *testing.T) store.Store {
	t.Helper()
	st, err := store.NewFile(t.TempDir(), zap.NewNop())
	require.NoError(t, err)
	return st
}

func TestSeedThenList(t *testing.T) {
	srv := newTestServer(t, newFileStore(t))

	resp, err := http.Post(srv.URL+"/api/seed", "application/json", nil)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var seeded struct {
		Advocates []advocate.Advocate `json:"advocates"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&seeded))
	require.Len(t, seeded.Advocates, 3)
	assert.Equal(t, []string{"Ann", "Bob", "Cy"}, []string{
		seeded.Advocates[0].FirstName, seeded.Advocates[1].FirstName, seeded.Advocates[2].FirstName,
	})

	// Batches commit in any order, so the store's order and ids need not
	// follow the seed response.
	got, err := client.NewClient(srv.URL).FetchAdvocates(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.ElementsMatch(t, advocateIDs(seeded.Advocates), advocateIDs(got))

	byName := make(map[string]advocate.Advocate, len(got))
	for _, a := range got {
		byName[a.FirstName] = a
	}
	require.Contains(t, byName, "Cy")
	assert.Equal(t, []string{}, byName["Cy"].Specialties)
	assert.Equal(t, []string{"Cardiology"}, byName["Bob"].Specialties)
}

func advocateIDs(advocates []advocate.Advocate) []string {
	out := make([]string, len(advocates))
	for i, a := range advocates {
		out[i] = a.ID
	}
	return out
}

func TestSeedRejectsGet(t *testing.T) {
	srv := newTestServer(t, newFileStore(t))

	resp, err := http.Get(srv.URL + "/api/seed")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)
}

func TestAdvocatesEmpty(t *testing.T) {
	srv := newTestServer(t, newFileStore(t))

	resp, err := http.Get(srv.URL + "/api/advocates")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/json", resp.Header.Get("Content-Type"))

	var body map[string]json.RawMessage
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.JSONEq(t, `[]`, string(body["data"]))
}

type failingStore struct {
	store.Store
}

func (failingStore) Insert(ctx context.Context, batch []advocate.NewAdvocate) ([]advocate.Advocate, error) {
	return nil, errors.New("disk full")
}

func TestSeedFailure(t *testing.T) {
	srv := newTestServer(t, failingStore{Store: newFileStore(t)})

	resp, err := http.Post(srv.URL+"/api/seed", "application/json", nil)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)

	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "seed failed", body["error"])
}

func getStatus(t *testing.T, srv *httptest.Server) statusResponse {
	t.Helper()
	resp, err := http.Get(srv.URL + "/api/status")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var status statusResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&status))
	return status
}

func TestStatus(t *testing.T) {
	srv := newTestServer(t, newFileStore(t))

	// Nothing written yet.
	assert.Equal(t, statusResponse{Count: 0, Store: store.DriverFile, BatchSize: 2}, getStatus(t, srv))

	resp, err := http.Post(srv.URL+"/api/seed", "application/json", nil)
	require.NoError(t, err)
	resp.Body.Close()

	status := getStatus(t, srv)
	assert.Equal(t, 3, status.Count)
	assert.Equal(t, store.DriverFile, status.Store)
	assert.Equal(t, 2, status.BatchSize)
	updatedAt, err := time.Parse("2006-01-02T15:04:05Z", status.UpdatedAt)
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now(), updatedAt, time.Minute)
}

func TestStatusWithoutUpdateTime(t *testing.T) {
	st, err := store.NewSQLite(context.Background(), ":memory:", zap.NewNop())
	require.NoError(t, err)
	defer st.Close()

	srv := newTestServer(t, st)
	assert.Empty(t, getStatus(t, srv).UpdatedAt)
}

// slowStore holds every insert open for a while unless its context ends.
type slowStore struct {
	store.Store
	delay     time.Duration
	started   chan struct{}
	wg        sync.WaitGroup
	aborted   atomic.Int32
	completed atomic.Int32
}

func (s *slowStore) Insert(ctx context.Context, batch []advocate.NewAdvocate) ([]advocate.Advocate, error) {
	defer s.wg.Done()
	s.started <- struct{}{}
	select {
	case <-time.After(s.delay):
	case <-ctx.Done():
		s.aborted.Add(1)
		return nil, ctx.Err()
	}
	s.completed.Add(1)
	return s.Store.Insert(ctx, batch)
}

func TestSeedSurvivesClientDisconnect(t *testing.T) {
	rows := len(seedRows())
	st := &slowStore{
		Store:   newFileStore(t),
		delay:   200 * time.Millisecond,
		started: make(chan struct{}, rows),
	}
	st.wg.Add(rows)

	logger := zap.NewNop()
	loader := seed.NewLoader(st, seed.WithBatchSize(1), seed.WithLogger(logger))
	srv := httptest.NewServer(NewHandler(st, loader, seedRows, logger))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, srv.URL+"/api/seed", nil)
	require.NoError(t, err)

	reqErr := make(chan error, 1)
	go func() {
		resp, err := http.DefaultClient.Do(req)
		if err == nil {
			resp.Body.Close()
		}
		reqErr <- err
	}()

	// Disconnect once every batch is in flight.
	for i := 0; i < rows; i++ {
		select {
		case <-st.started:
		case <-time.After(5 * time.Second):
			t.Fatal("batches were not submitted")
		}
	}
	cancel()
	require.Error(t, <-reqErr)

	done := make(chan struct{})
	go func() {
		st.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("batches did not finish")
	}

	assert.Zero(t, st.aborted.Load())
	assert.Equal(t, int32(rows), st.completed.Load())

	n, err := st.Count(context.Background())
	require.NoError(t, err)
	assert.Equal(t, rows, n)
}
