package jservice

import (
	"context"
	"encoding/json"
	"errors"
	"math/rand/v2"
	"net/http"
	"net/http/httptest"
	"slices"
	"strconv"
	"testing"
)

func intPtr(v int) *int { return &v }

// fakeAPI serves the two endpoints of the quiz API from in-memory data.
type fakeAPI struct {
	categories []CategorySummary
	details    map[int]CategoryDetail
	failList   bool
	failDetail map[int]bool
}

func (f *fakeAPI) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	switch r.URL.Path {
	case "/api/categories":
		if f.failList {
			http.Error(w, "boom", http.StatusInternalServerError)
			return
		}
		count, _ := strconv.Atoi(r.URL.Query().Get("count"))
		out := f.categories
		if count < len(out) {
			out = out[:count]
		}
		json.NewEncoder(w).Encode(out)
	case "/api/category":
		id, _ := strconv.Atoi(r.URL.Query().Get("id"))
		if f.failDetail[id] {
			http.Error(w, "boom", http.StatusInternalServerError)
			return
		}
		d, ok := f.details[id]
		if !ok {
			http.NotFound(w, r)
			return
		}
		json.NewEncoder(w).Encode(d)
	default:
		http.NotFound(w, r)
	}
}

func newTestSampler(t *testing.T, api http.Handler, cfg SamplerConfig) *Sampler {
	t.Helper()
	srv := httptest.NewServer(api)
	t.Cleanup(srv.Close)

	client, err := NewClient(srv.URL+"/api/", srv.Client())
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	return NewSampler(client, cfg, rand.New(rand.NewPCG(1, 2)))
}

func TestShuffleIsPermutation(t *testing.T) {
	rnd := rand.New(rand.NewPCG(7, 11))

	for n := range 20 {
		in := make([]int, n)
		for i := range in {
			in[i] = i * 3
		}
		got := Shuffle(rnd, slices.Clone(in))

		slices.Sort(got)
		if !slices.Equal(got, in) {
			t.Fatalf("n=%d: shuffled %v is not a permutation of %v", n, got, in)
		}
	}
}

func TestShuffleReachesEveryPosition(t *testing.T) {
	rnd := rand.New(rand.NewPCG(3, 5))
	seen := make(map[int]bool)

	for range 200 {
		s := Shuffle(rnd, []int{0, 1, 2, 3})
		seen[slices.Index(s, 0)] = true
	}
	if len(seen) != 4 {
		t.Errorf("element 0 landed in %d distinct positions, want 4", len(seen))
	}
}

func TestSelectCategoryIDs(t *testing.T) {
	api := &fakeAPI{}
	for id := 1; id <= 20; id++ {
		count := 5
		if id%2 == 0 {
			count = 4
		}
		api.categories = append(api.categories, CategorySummary{ID: id, CluesCount: count})
	}

	s := newTestSampler(t, api, SamplerConfig{NumberOfCategories: 6, NumberOfCluesPerCategory: 5, CategoryPoolSize: 100})

	ids, err := s.SelectCategoryIDs(context.Background())
	if err != nil {
		t.Fatalf("select: %v", err)
	}
	if len(ids) != 6 {
		t.Fatalf("got %d ids, want 6", len(ids))
	}

	seen := make(map[int]bool)
	for _, id := range ids {
		if id%2 == 0 {
			t.Errorf("id %d has too few clues", id)
		}
		if seen[id] {
			t.Errorf("id %d selected twice", id)
		}
		seen[id] = true
	}
}

func TestSelectCategoryIDsTooFewEligible(t *testing.T) {
	api := &fakeAPI{categories: []CategorySummary{
		{ID: 1, CluesCount: 9},
		{ID: 2, CluesCount: 1},
		{ID: 3, CluesCount: 5},
	}}
	s := newTestSampler(t, api, SamplerConfig{NumberOfCategories: 6, NumberOfCluesPerCategory: 5})

	ids, err := s.SelectCategoryIDs(context.Background())
	if err != nil {
		t.Fatalf("select: %v", err)
	}
	slices.Sort(ids)
	if !slices.Equal(ids, []int{1, 3}) {
		t.Errorf("ids = %v, want [1 3]", ids)
	}
}

func TestSelectCategoryIDsRepeatedInList(t *testing.T) {
	api := &fakeAPI{categories: []CategorySummary{
		{ID: 4, CluesCount: 5},
		{ID: 4, CluesCount: 5},
		{ID: 8, CluesCount: 5},
		{ID: 4, CluesCount: 5},
	}}
	s := newTestSampler(t, api, SamplerConfig{NumberOfCategories: 3, NumberOfCluesPerCategory: 5})

	ids, err := s.SelectCategoryIDs(context.Background())
	if err != nil {
		t.Fatalf("select: %v", err)
	}
	slices.Sort(ids)
	if !slices.Equal(ids, []int{4, 8}) {
		t.Errorf("ids = %v, want [4 8]", ids)
	}
}

func TestSelectCategoryIDsListFailure(t *testing.T) {
	s := newTestSampler(t, &fakeAPI{failList: true}, SamplerConfig{})

	ids, err := s.SelectCategoryIDs(context.Background())

	var dsErr *DataSourceError
	if !errors.As(err, &dsErr) {
		t.Fatalf("err = %v, want *DataSourceError", err)
	}
	if ids == nil || len(ids) != 0 {
		t.Errorf("ids = %#v, want empty non-nil slice", ids)
	}
}

func TestSelectCategoryIDsMalformedBody(t *testing.T) {
	api := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"not": "a list"`))
	})
	s := newTestSampler(t, api, SamplerConfig{})

	_, err := s.SelectCategoryIDs(context.Background())

	var dsErr *DataSourceError
	if !errors.As(err, &dsErr) {
		t.Fatalf("err = %v, want *DataSourceError", err)
	}
}

func TestFetchCategory(t *testing.T) {
	clues := []ClueRecord{
		{ID: 1, Question: "q1", Answer: "a1", Value: intPtr(400)},
		{ID: 2, Question: "", Answer: "a2", Value: intPtr(400)},
		{ID: 3, Question: "q3", Answer: "", Value: intPtr(400)},
		{ID: 4, Question: "q4", Answer: "a4"},
		{ID: 5, Question: "q5", Answer: "a5", Value: intPtr(0)},
		{ID: 6, Question: "q6", Answer: "a6", Value: intPtr(1000)},
		{ID: 7, Question: "q7", Answer: "a7", Value: intPtr(800)},
		{ID: 8, Question: "q8", Answer: "a8"},
	}
	api := &fakeAPI{details: map[int]CategoryDetail{
		42: {ID: 42, Title: "science", Clues: clues},
	}}

	tests := []struct {
		name      string
		perColumn int
		wantLen   int
	}{
		{name: "fewer than usable", perColumn: 5, wantLen: 5},
		{name: "exactly usable", perColumn: 6, wantLen: 6},
		{name: "more than usable", perColumn: 10, wantLen: 6},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestSampler(t, api, SamplerConfig{NumberOfCluesPerCategory: tt.perColumn})

			cat, err := s.FetchCategory(context.Background(), 42)
			if err != nil {
				t.Fatalf("fetch: %v", err)
			}
			if cat.ID != 42 || cat.Title != "science" {
				t.Errorf("category = %d %q, want 42 %q", cat.ID, cat.Title, "science")
			}
			if len(cat.Clues) != tt.wantLen {
				t.Fatalf("got %d clues, want %d", len(cat.Clues), tt.wantLen)
			}

			sourceValue := map[int]*int{}
			for _, c := range clues {
				sourceValue[c.ID] = c.Value
			}
			for i, c := range cat.Clues {
				if c.Question == "" || c.Answer == "" {
					t.Errorf("clue %d is unusable", c.ID)
				}
				want := (i + 1) * 200
				if v := sourceValue[c.ID]; v != nil && *v > 0 {
					want = *v
				}
				if c.Value != want {
					t.Errorf("clue %d at rank %d: value = %d, want %d", c.ID, i, c.Value, want)
				}
			}
		})
	}
}

func TestFetchCategoryValueFallback(t *testing.T) {
	api := &fakeAPI{details: map[int]CategoryDetail{
		1: {ID: 1, Title: "only", Clues: []ClueRecord{{ID: 10, Question: "q", Answer: "a"}}},
	}}
	s := newTestSampler(t, api, SamplerConfig{})

	cat, err := s.FetchCategory(context.Background(), 1)
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if len(cat.Clues) != 1 || cat.Clues[0].Value != 200 {
		t.Errorf("clues = %+v, want one clue worth 200", cat.Clues)
	}
}

func TestFetchCategoryFailure(t *testing.T) {
	api := &fakeAPI{failDetail: map[int]bool{9: true}}
	s := newTestSampler(t, api, SamplerConfig{})

	_, err := s.FetchCategory(context.Background(), 9)

	var dsErr *DataSourceError
	if !errors.As(err, &dsErr) {
		t.Fatalf("err = %v, want *DataSourceError", err)
	}
}

func TestNewClientRejectsRelativeURL(t *testing.T) {
	if _, err := NewClient("/api/", nil); err == nil {
		t.Fatal("expected error for relative url")
	}
}

func TestClientResolvesWithoutTrailingSlash(t *testing.T) {
	api := &fakeAPI{categories: []CategorySummary{{ID: 1, CluesCount: 5}}}
	srv := httptest.NewServer(api)
	defer srv.Close()

	client, err := NewClient(srv.URL+"/api", srv.Client())
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	if err := client.Check(context.Background()); err != nil {
		t.Fatalf("check: %v", err)
	}
}
