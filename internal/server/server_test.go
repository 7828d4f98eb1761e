package server

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"BuyOrWait/internal/assistant"
	"BuyOrWait/internal/collector"
	"BuyOrWait/internal/logger"
	"BuyOrWait/internal/model"

	json "github.com/goccy/go-json"
	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var jan1 = time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

func observations(region, commodity string, prices ...float64) []model.PriceObservation {
	obs := make([]model.PriceObservation, len(prices))
	for i, p := range prices {
		obs[i] = model.PriceObservation{Date: jan1.AddDate(0, 0, i), Region: region, Commodity: commodity, Price: p}
	}
	return obs
}

func newTestServer(t *testing.T) (*Server, *httptest.Server) {
	t.Helper()
	var obs []model.PriceObservation
	obs = append(obs, observations("Kerala", "Tomato", 100, 102, 104, 106, 108, 110, 112)...)
	obs = append(obs, observations("Kerala", "Onion", 100, 100, 100, 100, 100, 100, 100)...)
	obs = append(obs, observations("Goa", "Potato", 20, 21, 22)...)
	obs = append(obs, observations("Goa", "Garlic", 5, 4, 3, 2, 1, 1, 0)...)
	s := New("127.0.0.1:0", collector.NewTable("test", obs), "₹")
	ts := httptest.NewServer(s.Handler())
	t.Cleanup(ts.Close)
	return s, ts
}

func getJSON(t *testing.T, url string, out any) int {
	t.Helper()
	resp, err := http.Get(url)
	require.NoError(t, err)
	defer resp.Body.Close()
	if out != nil {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
	}
	return resp.StatusCode
}

func TestHealthAndListing(t *testing.T) {
	_, ts := newTestServer(t)

	var health map[string]any
	assert.Equal(t, http.StatusOK, getJSON(t, ts.URL+"/healthz", &health))
	assert.Equal(t, "ok", health["status"])
	assert.Equal(t, float64(24), health["observations"])

	var states map[string][]string
	assert.Equal(t, http.StatusOK, getJSON(t, ts.URL+"/api/states", &states))
	assert.Equal(t, []string{"Goa", "Kerala"}, states["states"])

	var commodities struct {
		State       string   `json:"state"`
		Commodities []string `json:"commodities"`
	}
	assert.Equal(t, http.StatusOK, getJSON(t, ts.URL+"/api/commodities?state=Kerala", &commodities))
	assert.Equal(t, []string{"Onion", "Tomato"}, commodities.Commodities)
	assert.Equal(t, http.StatusBadRequest, getJSON(t, ts.URL+"/api/commodities", nil))

	var qq map[string][]string
	assert.Equal(t, http.StatusOK, getJSON(t, ts.URL+"/api/quick-questions", &qq))
	assert.Equal(t, assistant.QuickQuestions, qq["questions"])
}

func TestForecast(t *testing.T) {
	_, ts := newTestServer(t)

	var v analysisView
	require.Equal(t, http.StatusOK, getJSON(t, ts.URL+"/api/forecast?state=Kerala&commodity=Tomato", &v))
	assert.Equal(t, "Kerala", v.State)
	assert.Equal(t, 112.0, v.CurrentPrice)
	assert.Equal(t, 126.0, v.PredictedPrice)
	assert.Equal(t, 12.5, v.PercentChange)
	assert.Equal(t, model.ActionBuyNow, v.Action)
	assert.Equal(t, "BUY NOW", v.ActionLabel)
	assert.Equal(t, 114.0, v.MinPredictedPrice)
	assert.Equal(t, "2026-01-08", v.BestDay)
	assert.Equal(t, 1, v.WaitDays)
	assert.InDelta(t, 2.0, v.Slope, 1e-9)
	require.Len(t, v.History, 7)
	require.Len(t, v.Forecast, 7)
	assert.Equal(t, pricePoint{Date: "2026-01-14", Price: 126}, v.Forecast[6])
}

func TestForecast_Errors(t *testing.T) {
	_, ts := newTestServer(t)
	tests := []struct {
		name   string
		query  string
		status int
		msg    string
	}{
		{"insufficient data", "state=Goa&commodity=Potato", http.StatusUnprocessableEntity, InsufficientDataMessage},
		{"unknown selection", "state=Goa&commodity=Mango", http.StatusNotFound, "unknown region/commodity selection"},
		{"zero current price", "state=Goa&commodity=Garlic", http.StatusUnprocessableEntity, "current price is zero"},
		{"missing commodity", "state=Goa", http.StatusBadRequest, "required"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var e errorResponse
			assert.Equal(t, tt.status, getJSON(t, ts.URL+"/api/forecast?"+tt.query, &e))
			assert.Contains(t, e.Error, tt.msg)
		})
	}
}

func TestAsk(t *testing.T) {
	_, ts := newTestServer(t)

	post := func(body string) (int, map[string]string) {
		resp, err := http.Post(ts.URL+"/api/ask", "application/json", strings.NewReader(body))
		require.NoError(t, err)
		defer resp.Body.Close()
		var out map[string]string
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
		return resp.StatusCode, out
	}

	status, out := post(`{"state":"Kerala","commodity":"Tomato","question":"is it cheap now?"}`)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "💰 The lowest predicted price is ₹114 on 📅 2026-01-08.", out["answer"])

	status, out = post(`{"state":"Kerala","commodity":"Onion","question":"asdkjasd"}`)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, assistant.HelpText, out["answer"])

	status, _ = post(`{"state":"Kerala","commodity":"Onion","question":"   "}`)
	assert.Equal(t, http.StatusBadRequest, status)

	status, _ = post(`not json`)
	assert.Equal(t, http.StatusBadRequest, status)

	status, out = post(`{"state":"Goa","commodity":"Potato","question":"trend"}`)
	assert.Equal(t, http.StatusUnprocessableEntity, status)
	assert.Equal(t, InsufficientDataMessage, out["error"])
}

func TestChart(t *testing.T) {
	_, ts := newTestServer(t)

	resp, err := http.Get(ts.URL + "/api/chart.png?state=Kerala&commodity=Tomato")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "image/png", resp.Header.Get("Content-Type"))
	body, _ := io.ReadAll(resp.Body)
	assert.True(t, bytes.HasPrefix(body, []byte("\x89PNG")))

	resp2, err := http.Get(ts.URL + "/api/chart.png?state=Goa&commodity=Potato")
	require.NoError(t, err)
	resp2.Body.Close()
	assert.Equal(t, http.StatusUnprocessableEntity, resp2.StatusCode)
}

func dialChat(t *testing.T, ts *httptest.Server) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws/chat"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn
}

func exchange(t *testing.T, conn *websocket.Conn, in clientFrame) serverFrame {
	t.Helper()
	data, err := json.Marshal(in)
	require.NoError(t, err)
	require.NoError(t, conn.WriteMessage(websocket.TextMessage, data))
	return readFrame(t, conn)
}

func readFrame(t *testing.T, conn *websocket.Conn) serverFrame {
	t.Helper()
	conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	_, data, err := conn.ReadMessage()
	require.NoError(t, err)
	var out serverFrame
	require.NoError(t, json.Unmarshal(data, &out))
	return out
}

func TestChat_Session(t *testing.T) {
	_, ts := newTestServer(t)
	conn := dialChat(t, ts)

	out := exchange(t, conn, clientFrame{Type: FrameAsk, Question: "trend"})
	assert.Equal(t, FrameError, out.Type)
	assert.Equal(t, assistant.NoSelectionText, out.Error)
	sessionID := out.SessionID
	assert.NotEmpty(t, sessionID)

	out = exchange(t, conn, clientFrame{Type: FrameSelect, State: "Kerala", Commodity: "Tomato"})
	assert.Equal(t, FrameSelected, out.Type)
	require.NotNil(t, out.Analysis)
	assert.Equal(t, "BUY NOW", out.Analysis.ActionLabel)
	assert.Equal(t, sessionID, out.SessionID)

	out = exchange(t, conn, clientFrame{Type: FrameAsk, Question: "What is the current price?"})
	assert.Equal(t, FrameAnswer, out.Type)
	assert.Equal(t, "📌 Current price is ₹112.", out.Answer)
}

func TestChat_BlankQuestionIgnored(t *testing.T) {
	_, ts := newTestServer(t)
	conn := dialChat(t, ts)

	exchange(t, conn, clientFrame{Type: FrameSelect, State: "Kerala", Commodity: "Onion"})
	// blank questions get no reply, so the next frame read answers the history request
	data, _ := json.Marshal(clientFrame{Type: FrameAsk, Question: "  "})
	require.NoError(t, conn.WriteMessage(websocket.TextMessage, data))

	out := exchange(t, conn, clientFrame{Type: FrameHistory})
	assert.Equal(t, FrameHistory, out.Type)
	assert.Empty(t, out.History)

	exchange(t, conn, clientFrame{Type: FrameAsk, Question: "state?"})
	out = exchange(t, conn, clientFrame{Type: FrameHistory})
	require.Len(t, out.History, 2)
	assert.Equal(t, messageView{Speaker: model.SpeakerUser, Text: "state?"}, out.History[0])
	assert.Equal(t, messageView{Speaker: model.SpeakerAssistant, Text: "📍 Selected state: **Kerala**."}, out.History[1])
}

func TestChat_Errors(t *testing.T) {
	_, ts := newTestServer(t)
	conn := dialChat(t, ts)

	out := exchange(t, conn, clientFrame{Type: FrameSelect, State: "Goa", Commodity: "Potato"})
	assert.Equal(t, FrameError, out.Type)
	assert.Equal(t, InsufficientDataMessage, out.Error)

	out = exchange(t, conn, clientFrame{Type: FrameSelect, State: "Goa"})
	assert.Equal(t, "state and commodity are required", out.Error)

	out = exchange(t, conn, clientFrame{Type: "dance"})
	assert.Equal(t, "unknown frame type dance", out.Error)

	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte("{")))
	assert.Equal(t, "invalid frame", readFrame(t, conn).Error)
}

func TestChat_SessionsAreIsolated(t *testing.T) {
	_, ts := newTestServer(t)
	a := dialChat(t, ts)
	b := dialChat(t, ts)

	first := exchange(t, a, clientFrame{Type: FrameSelect, State: "Kerala", Commodity: "Tomato"})
	exchange(t, a, clientFrame{Type: FrameAsk, Question: "trend"})

	out := exchange(t, b, clientFrame{Type: FrameHistory})
	assert.Empty(t, out.History)
	assert.NotEqual(t, first.SessionID, out.SessionID)

	out = exchange(t, b, clientFrame{Type: FrameAsk, Question: "trend"})
	assert.Equal(t, FrameError, out.Type)
}

func TestShutdownClosesChat(t *testing.T) {
	s, ts := newTestServer(t)
	conn := dialChat(t, ts)
	exchange(t, conn, clientFrame{Type: FrameHistory})

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	require.NoError(t, s.Shutdown(ctx))

	conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	_, _, err := conn.ReadMessage()
	assert.True(t, websocket.IsCloseError(err, websocket.CloseGoingAway), "got %v", err)
}

func TestChat_SelectTrimsNames(t *testing.T) {
	_, ts := newTestServer(t)
	conn := dialChat(t, ts)

	out := exchange(t, conn, clientFrame{Type: FrameSelect, State: " Kerala ", Commodity: "Tomato\t"})
	assert.Equal(t, FrameSelected, out.Type)
	require.NotNil(t, out.Analysis)
	assert.Equal(t, "Kerala", out.Analysis.State)
	assert.Equal(t, "Tomato", out.Analysis.Commodity)
}

type failingWriter struct {
	header http.Header
	status int
}

func (f *failingWriter) Header() http.Header { return f.header }
func (f *failingWriter) WriteHeader(status int) { f.status = status }
func (f *failingWriter) Write([]byte) (int, error) { return 0, errors.New("connection reset") }

func TestChart_WriteErrorIsLogged(t *testing.T) {
	s, _ := newTestServer(t)

	var logs bytes.Buffer
	origOut, origLevel := logger.Log.Out, logger.Log.GetLevel()
	logger.Log.SetOutput(&logs)
	logger.Log.SetLevel(logrus.DebugLevel)
	defer func() {
		logger.Log.SetOutput(origOut)
		logger.Log.SetLevel(origLevel)
	}()

	w := &failingWriter{header: http.Header{}}
	r := httptest.NewRequest(http.MethodGet, "/api/chart.png?state=Kerala&commodity=Tomato", nil)
	s.handleChart(w, r)

	assert.Equal(t, "image/png", w.header.Get("Content-Type"))
	assert.Contains(t, logs.String(), "write chart: connection reset")
}
