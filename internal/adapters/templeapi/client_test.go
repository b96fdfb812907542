package templeapi_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/randomtoy/temple-go/internal/adapters/templeapi"
	"github.com/randomtoy/temple-go/internal/domain"
	"github.com/randomtoy/temple-go/internal/locale"
)

func testRequest() domain.DivinationRequest {
	return domain.DivinationRequest{
		Wish:    "career luck",
		Numbers: [3]int{8, 26, 67},
		Locale:  locale.English,
	}
}

func TestClient_Divine_Success(t *testing.T) {
	var gotReq map[string]any

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("expected POST, got %s", r.Method)
		}
		if r.URL.Path != "/api/divination" {
			t.Errorf("expected /api/divination, got %s", r.URL.Path)
		}
		if r.Header.Get("Accept-Language") != "en" {
			t.Errorf("bad Accept-Language header: %s", r.Header.Get("Accept-Language"))
		}
		if r.Header.Get("Content-Type") != "application/json" {
			t.Errorf("bad content-type: %s", r.Header.Get("Content-Type"))
		}

		body, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(body, &gotReq)

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"success": true,
			"divination": "Person and matter are in harmony.",
			"prediction": "Steady gains.",
			"advice": "Be patient.",
			"luck": 8,
			"luck_text": "中吉",
			"full_text": "...",
			"palaces": [
				{"name": "留连", "pinyin": "liu lian", "element": "土", "position": "ren"},
				{"name": "留连", "pinyin": "liu lian", "element": "土", "position": "shi"},
				{"name": "大安", "pinyin": "da an", "element": "木", "position": "ying"}
			]
		}`))
	}))
	defer srv.Close()

	client := templeapi.NewClient(srv.Client(), srv.URL+"/", slog.Default())

	out, err := client.Divine(context.Background(), testRequest())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if out.Luck != 8 || out.LuckText != "中吉" {
		t.Errorf("unexpected luck: %d %s", out.Luck, out.LuckText)
	}
	if len(out.Palaces) != 3 || out.Palaces[2].Name != "大安" {
		t.Errorf("unexpected palaces: %+v", out.Palaces)
	}

	if gotReq["wish"] != "career luck" {
		t.Errorf("request wish: %v", gotReq["wish"])
	}
	if gotReq["language"] != "en" {
		t.Errorf("request language: %v", gotReq["language"])
	}
	nums, _ := gotReq["numbers"].([]any)
	if len(nums) != 3 || nums[0] != float64(8) {
		t.Errorf("request numbers: %v", gotReq["numbers"])
	}
}

func TestClient_Divine_UpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"detail":"占卜服务异常"}`))
	}))
	defer srv.Close()

	client := templeapi.NewClient(srv.Client(), srv.URL, slog.Default())

	_, err := client.Divine(context.Background(), testRequest())
	if !errors.Is(err, domain.ErrTransport) {
		t.Fatalf("expected ErrTransport for upstream 500, got %v", err)
	}
}

func TestClient_Divine_BadJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("this is not json at all"))
	}))
	defer srv.Close()

	client := templeapi.NewClient(srv.Client(), srv.URL, slog.Default())

	_, err := client.Divine(context.Background(), testRequest())
	if !errors.Is(err, domain.ErrTransport) {
		t.Fatalf("expected ErrTransport for malformed body, got %v", err)
	}
}

func TestClient_Divine_Unsuccessful(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"success": false, "error": "解析结果失败"}`))
	}))
	defer srv.Close()

	client := templeapi.NewClient(srv.Client(), srv.URL, slog.Default())

	_, err := client.Divine(context.Background(), testRequest())
	if !errors.Is(err, domain.ErrTransport) || !errors.Is(err, domain.ErrUnsuccessful) {
		t.Fatalf("expected ErrTransport and ErrUnsuccessful, got %v", err)
	}
}

func TestClient_Divine_Unreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	client := templeapi.NewClient(http.DefaultClient, url, slog.Default())

	_, err := client.Divine(context.Background(), testRequest())
	if !errors.Is(err, domain.ErrTransport) {
		t.Fatalf("expected ErrTransport for closed server, got %v", err)
	}
}

func TestClient_Bless_Success(t *testing.T) {
	var gotReq map[string]any

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/incense" {
			t.Errorf("expected /api/incense, got %s", r.URL.Path)
		}
		if r.Header.Get("Accept-Language") != "zh" {
			t.Errorf("bad Accept-Language header: %s", r.Header.Get("Accept-Language"))
		}
		body, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(body, &gotReq)

		_ = json.NewEncoder(w).Encode(map[string]any{
			"success":       true,
			"blessing":      "愿心想事成",
			"blessing_zh":   "愿心想事成",
			"blessing_en":   "May your wish come true",
			"fortune_trend": "吉",
			"token":         "SOL",
			"amount":        5,
		})
	}))
	defer srv.Close()

	client := templeapi.NewClient(srv.Client(), srv.URL, slog.Default())

	out, err := client.Bless(context.Background(), domain.BlessingRequest{
		Wish:   "平安",
		Token:  "SOL",
		Amount: 5,
		Locale: locale.Chinese,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.BlessingEN != "May your wish come true" || out.Amount != 5 {
		t.Errorf("unexpected blessing: %+v", out)
	}
	if gotReq["token"] != "SOL" || gotReq["amount"] != float64(5) || gotReq["language"] != "zh" {
		t.Errorf("unexpected request body: %v", gotReq)
	}
}

func TestClient_Bless_Failures(t *testing.T) {
	tests := []struct {
		name         string
		status       int
		body         string
		unsuccessful bool
	}{
		{"upstream 502", http.StatusBadGateway, `{"detail":"上香服务异常"}`, false},
		{"malformed body", http.StatusOK, "not json", false},
		{"success false", http.StatusOK, `{"success": false, "blessing": ""}`, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			client := templeapi.NewClient(srv.Client(), srv.URL, slog.Default())

			_, err := client.Bless(context.Background(), domain.BlessingRequest{
				Wish:   "平安",
				Token:  "USDC",
				Amount: 1,
				Locale: locale.English,
			})
			if !errors.Is(err, domain.ErrTransport) {
				t.Fatalf("expected ErrTransport, got %v", err)
			}
			if got := errors.Is(err, domain.ErrUnsuccessful); got != tt.unsuccessful {
				t.Errorf("ErrUnsuccessful = %v, want %v (err %v)", got, tt.unsuccessful, err)
			}
		})
	}
}
