package shifttrade

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"cafeshift/backend/foundation/web"
	"cafeshift/backend/internal/entity"
	"cafeshift/backend/internal/repository/postgres"
	"cafeshift/backend/internal/repository/postgres/shifttrade"
	"cafeshift/backend/internal/service/workforce"

	"github.com/gin-gonic/gin"
)

// fakeTrades holds one trade per id and lets "ben" take them.
type fakeTrades struct {
	ShiftTrade
	trades  map[string]entity.ShiftTrade
	created *shifttrade.CreateRequest
}

func (f *fakeTrades) Take(_ context.Context, id string) (entity.ShiftTrade, error) {
	trade, ok := f.trades[id]
	if !ok {
		return entity.ShiftTrade{}, postgres.DecisionError(postgres.ErrNotFound, "trade")
	}
	if err := workforce.CheckTake(trade, "ben"); err != nil {
		return entity.ShiftTrade{}, postgres.DecisionError(err, "trade")
	}

	taker := "ben"
	trade.ToUserID = &taker
	f.trades[id] = trade
	return trade, nil
}

func (f *fakeTrades) Create(_ context.Context, request shifttrade.CreateRequest) (entity.ShiftTrade, error) {
	f.created = &request
	return entity.ShiftTrade{ShiftID: request.ShiftID, Reason: request.Reason, Status: entity.TradePending}, nil
}

func TestTake(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name    string
		id      string
		want    int
		message string
	}{
		{"open trade", "t1", http.StatusOK, `"toUserId":"ben"`},
		{"own trade", "t2", http.StatusBadRequest, "cannot take your own shift"},
		{"already decided", "t3", http.StatusBadRequest, "already been processed"},
		{"unknown trade", "t9", http.StatusNotFound, "trade not found"},
	}

	for _, tt := range tests {
		f := &fakeTrades{trades: map[string]entity.ShiftTrade{
			"t1": {Status: entity.TradePending, FromUserID: "ana"},
			"t2": {Status: entity.TradePending, FromUserID: "ben"},
			"t3": {Status: entity.TradeApproved, FromUserID: "ana"},
		}}
		app := web.NewApp()
		app.Put("/shift-trades/:id/take", NewController(f).Take)

		w := httptest.NewRecorder()
		app.ServeHTTP(w, httptest.NewRequest(http.MethodPut, "/shift-trades/"+tt.id+"/take", nil))

		if w.Code != tt.want || !strings.Contains(w.Body.String(), tt.message) {
			t.Fatalf("%s: %d %s", tt.name, w.Code, w.Body.String())
		}
	}
}

func TestCreateRequiresReason(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name string
		body string
		want int
	}{
		{"complete", `{"shiftId":"s1","reason":"exam"}`, http.StatusCreated},
		{"no reason", `{"shiftId":"s1"}`, http.StatusBadRequest},
		{"no shift", `{"reason":"exam"}`, http.StatusBadRequest},
	}

	for _, tt := range tests {
		f := &fakeTrades{}
		app := web.NewApp()
		app.Post("/shift-trades", NewController(f).Create)

		r := httptest.NewRequest(http.MethodPost, "/shift-trades", strings.NewReader(tt.body))
		r.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		app.ServeHTTP(w, r)

		if w.Code != tt.want {
			t.Fatalf("%s: %d %s", tt.name, w.Code, w.Body.String())
		}
		if (f.created != nil) != (tt.want == http.StatusCreated) {
			t.Fatalf("%s: repository called=%v", tt.name, f.created != nil)
		}
	}
}
