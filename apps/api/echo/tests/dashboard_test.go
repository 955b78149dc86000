package tests

import (
	"context"
	"net/http"
	"testing"

	"github.com/tchamgoue/memboard/core/member"
)

func seedMember(t *testing.T, repo member.Repository, cell, formations string) member.Member {
	mbr, err := repo.CreateMember(context.Background(), member.Member{
		Age:        23,
		Sex:        "Femme",
		Cell:       cell,
		Formations: formations,
	})
	if err != nil {
		t.Fatalf("seedMember() failed: %v", err)
	}
	return mbr
}

func Test_home(t *testing.T) {
	app, _ := setup(t)

	req, rec := newRequest(http.MethodGet, "/")
	app.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("code = %v, want %v", rec.Code, http.StatusOK)
	}
	if rec.Body.String() != "Welcome to Memboard API!" {
		t.Errorf("body = %q", rec.Body.String())
	}
}

func Test_dashboard_cellDistribution(t *testing.T) {
	app, repo := setup(t)

	seedMember(t, repo, "Douala", "")
	seedMember(t, repo, "Douala", "")
	seedMember(t, repo, "Yaoundé", "")

	want := []member.CellDistribution{
		{Cell: "Douala", Count: member.CellDistributionCount{Cell: 2}},
		{Cell: "Yaoundé", Count: member.CellDistributionCount{Cell: 1}},
	}
	tt := httpTest{
		method:   http.MethodGet,
		path:     "/dashboard?action=cellDistribution",
		wantCode: http.StatusOK,
		wantData: marchallObj(t, want),
	}

	req, rec := newRequest(tt.method, tt.path)
	app.ServeHTTP(rec, req)
	checkCodeAndData(t, tt, rec)
}

func Test_dashboard_formationCount(t *testing.T) {
	app, repo := setup(t)

	seedMember(t, repo, "Douala", "Leadership, Finance")
	seedMember(t, repo, "Yaoundé", "Finance")
	seedMember(t, repo, "Yaoundé", "")

	tt := httpTest{
		method:   http.MethodGet,
		path:     "/dashboard?action=formationCount",
		wantCode: http.StatusOK,
		wantData: marchallObj(t, map[string]int{"Leadership": 1, "Finance": 2}),
	}

	req, rec := newRequest(tt.method, tt.path)
	app.ServeHTTP(rec, req)
	checkCodeAndData(t, tt, rec)
}

func Test_dashboard_invalidAction(t *testing.T) {
	app, _ := setup(t)

	tests := []httpTest{
		{
			name:     "missing query action",
			method:   http.MethodGet,
			path:     "/dashboard",
			wantCode: http.StatusBadRequest,
			wantData: marchallObj(t, httpErr{Error: "invalid action"}),
		},
		{
			name:     "unknown query action",
			method:   http.MethodGet,
			path:     "/dashboard?action=dropTables",
			wantCode: http.StatusBadRequest,
			wantData: marchallObj(t, httpErr{Error: "invalid action"}),
		},
		{
			name:     "unknown body action",
			method:   http.MethodPost,
			path:     "/dashboard",
			body:     []byte(`{"action": "deleteFormation", "memberId": 1, "newFormation": "X"}`),
			wantCode: http.StatusBadRequest,
			wantData: marchallObj(t, httpErr{Error: "invalid action"}),
		},
		{
			name:     "unsupported method",
			method:   http.MethodPut,
			path:     "/dashboard",
			wantCode: http.StatusMethodNotAllowed,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, rec := newRequest(tt.method, tt.path, tt.body)
			app.ServeHTTP(rec, req)
			checkCodeAndData(t, tt, rec)
		})
	}
}

func Test_dashboard_addFormation(t *testing.T) {
	app, repo := setup(t)
	mbr := seedMember(t, repo, "Douala", "A, B")

	t.Run("appends to the member", func(t *testing.T) {
		tt := httpTest{
			method:   http.MethodPost,
			path:     "/dashboard",
			body:     []byte(`{"action": "addFormation", "memberId": 1, "newFormation": "C"}`),
			wantCode: http.StatusOK,
		}
		req, rec := newRequest(tt.method, tt.path, tt.body)
		app.ServeHTTP(rec, req)
		checkCodeAndData(t, tt, rec)

		stored, err := repo.GetMemberByID(context.Background(), mbr.ID)
		if err != nil {
			t.Fatalf("GetMemberByID() failed: %v", err)
		}
		if stored.Formations != "A, B, C" {
			t.Errorf("stored formations = %q, want %q", stored.Formations, "A, B, C")
		}
	})

	t.Run("duplicate conflicts", func(t *testing.T) {
		tt := httpTest{
			method:   http.MethodPost,
			path:     "/dashboard",
			body:     []byte(`{"action": "addFormation", "memberId": 1, "newFormation": " B "}`),
			wantCode: http.StatusConflict,
			wantData: marchallObj(t, httpErr{Error: member.ErrFormationExists.Error()}),
		}
		req, rec := newRequest(tt.method, tt.path, tt.body)
		app.ServeHTTP(rec, req)
		checkCodeAndData(t, tt, rec)

		stored, err := repo.GetMemberByID(context.Background(), mbr.ID)
		if err != nil {
			t.Fatalf("GetMemberByID() failed: %v", err)
		}
		if stored.Formations != "A, B, C" {
			t.Errorf("stored formations = %q; conflict must not mutate", stored.Formations)
		}
	})

	t.Run("unknown member", func(t *testing.T) {
		tt := httpTest{
			method:   http.MethodPost,
			path:     "/dashboard",
			body:     []byte(`{"action": "addFormation", "memberId": 404, "newFormation": "C"}`),
			wantCode: http.StatusNotFound,
			wantData: marchallObj(t, httpErr{Error: member.ErrNotFound.Error()}),
		}
		req, rec := newRequest(tt.method, tt.path, tt.body)
		app.ServeHTTP(rec, req)
		checkCodeAndData(t, tt, rec)
	})

	t.Run("missing fields", func(t *testing.T) {
		tt := httpTest{
			method:   http.MethodPost,
			path:     "/dashboard",
			body:     []byte(`{"action": "addFormation"}`),
			wantCode: http.StatusBadRequest,
			wantData: marchallObj(t, map[string]string{
				"memberId":     "this field is required",
				"newFormation": "this field is required",
			}),
		}
		req, rec := newRequest(tt.method, tt.path, tt.body)
		app.ServeHTTP(rec, req)
		checkCodeAndData(t, tt, rec)
	})

	t.Run("blank formation name", func(t *testing.T) {
		tt := httpTest{
			method:   http.MethodPost,
			path:     "/dashboard",
			body:     []byte(`{"action": "addFormation", "memberId": 1, "newFormation": "   "}`),
			wantCode: http.StatusBadRequest,
			wantData: marchallObj(t, map[string]string{"newFormation": "this field is required"}),
		}
		req, rec := newRequest(tt.method, tt.path, tt.body)
		app.ServeHTTP(rec, req)
		checkCodeAndData(t, tt, rec)
	})
}
