package nhlapi

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "nhlvis/internal/errors"
)

const samplePage = `{"data":[
 {"assists":20,"evGoals":8,"evPoints":25,"faceoffWinPct":0.4512,"gameWinningGoals":2,
  "gamesPlayed":82,"goals":10,"lastName":"Keller","otGoals":1,"penaltyMinutes":12,
  "playerId":8479343,"plusMinus":-3,"points":30,"pointsPerGame":0.3658,"positionCode":"C",
  "ppGoals":2,"ppPoints":5,"seasonId":20242025,"shGoals":0,"shPoints":0,
  "shootingPct":0.1,"shootsCatches":"L","shots":100,"skaterFullName":"Clayton Keller",
  "teamAbbrevs":"UTA","timeOnIcePerGame":1150.5},
 {"assists":0,"evGoals":0,"evPoints":0,"faceoffWinPct":null,"gameWinningGoals":0,
  "gamesPlayed":1,"goals":0,"lastName":"Depth","otGoals":0,"penaltyMinutes":0,
  "playerId":1,"plusMinus":0,"points":0,"pointsPerGame":0,"positionCode":"D",
  "ppGoals":0,"ppPoints":0,"seasonId":20242025,"shGoals":0,"shPoints":0,
  "shootingPct":null,"shootsCatches":"R","shots":0,"skaterFullName":"Deep Depth",
  "teamAbbrevs":"OTT","timeOnIcePerGame":600}
],"total":2}`

func TestClient_PageURL(t *testing.T) {
	c := NewClient("https://example.test/skater/summary", time.Second, WithPageSize(50))

	raw, err := c.PageURL(20232024, 3)
	require.NoError(t, err)

	u, err := url.Parse(raw)
	require.NoError(t, err)
	q := u.Query()

	assert.Equal(t, "false", q.Get("isAggregate"))
	assert.Equal(t, "season", q.Get("reportType"))
	assert.Equal(t, "false", q.Get("isGame"))
	assert.Equal(t, "skatersummary", q.Get("reportName"))
	assert.Equal(t, `[{"property":"points","direction":"DESC"}]`, q.Get("sort"))
	assert.Equal(t, "gameTypeId=2 and seasonId=20232024", q.Get("cayenneExp"))
	assert.Equal(t, "150", q.Get("start"))
	assert.Equal(t, "50", q.Get("limit"))
}

func TestClient_FetchSkaterPage(t *testing.T) {
	var gotQuery url.Values
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query()
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, samplePage)
	}))
	defer server.Close()

	c := NewClient(server.URL, time.Second)
	skaters, err := c.FetchSkaterPage(context.Background(), 20242025, 0)
	require.NoError(t, err)
	require.Len(t, skaters, 2)

	assert.Equal(t, "0", gotQuery.Get("start"))
	assert.Equal(t, "100", gotQuery.Get("limit"))

	keller := skaters[0]
	assert.Equal(t, "Clayton Keller", keller.SkaterFullName)
	require.NotNil(t, keller.Goals)
	assert.Equal(t, 10, *keller.Goals)
	assert.Nil(t, skaters[1].ShootingPct)
	assert.Nil(t, skaters[1].FaceoffWinPct)
}

func TestClient_FetchSkaterPage_Errors(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		errType apperrors.ErrorType
	}{
		{name: "server error", status: http.StatusInternalServerError, body: "boom", errType: apperrors.ErrTypeNetwork},
		{name: "not found", status: http.StatusNotFound, body: "", errType: apperrors.ErrTypeNetwork},
		{name: "bad json", status: http.StatusOK, body: "{not json", errType: apperrors.ErrTypeParsing},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				fmt.Fprint(w, tt.body)
			}))
			defer server.Close()

			_, err := NewClient(server.URL, time.Second).FetchSkaterPage(context.Background(), 20242025, 0)
			require.Error(t, err)
			assert.True(t, apperrors.IsType(err, tt.errType), "got %v", err)

			if tt.errType == apperrors.ErrTypeNetwork {
				var appErr *apperrors.AppError
				require.ErrorAs(t, err, &appErr)
				assert.Equal(t, tt.status, appErr.Context["status"])
				assert.Contains(t, appErr.Context["url"], server.URL)
			}
		})
	}
}

func TestClient_ContextCancelled(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, samplePage)
	}))
	defer server.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewClient(server.URL, time.Second, WithRateLimit(1)).FetchSkaterPage(ctx, 20242025, 0)
	require.Error(t, err)
	assert.True(t, apperrors.IsType(err, apperrors.ErrTypeNetwork))
}

func TestSkaterSummary_Row(t *testing.T) {
	goals, shots := 10, 100
	pct := 0.1
	s := SkaterSummary{
		Goals:          &goals,
		Shots:          &shots,
		ShootingPct:    &pct,
		PlayerID:       42,
		SeasonID:       20242025,
		SkaterFullName: "A, B",
		TeamAbbrevs:    "TOR,UTA",
	}

	row := s.Row()
	require.Len(t, row, len(RawColumns))

	col := func(name string) string {
		for i, c := range RawColumns {
			if c == name {
				return row[i]
			}
		}
		t.Fatalf("no column %s", name)
		return ""
	}
	assert.Equal(t, "10", col("goals"))
	assert.Equal(t, "0.1", col("shootingPct"))
	assert.Equal(t, "", col("faceoffWinPct"))
	assert.Equal(t, "", col("assists"))
	assert.Equal(t, "42", col("playerId"))
	assert.Equal(t, "20242025", col("seasonId"))
	assert.Equal(t, "TOR,UTA", col("teamAbbrevs"))
}
