package speechtotext

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap/zaptest"

	"github.com/yegors/watson-go/pkg/core"
	"github.com/yegors/watson-go/pkg/logger"
)

func newTestService(t *testing.T, router chi.Router) *Service {
	t.Helper()

	server := httptest.NewServer(router)
	t.Cleanup(server.Close)

	svc, err := NewService(&Options{
		ServiceOptions: core.ServiceOptions{
			URL:           server.URL + "/speech-to-text/api",
			Authenticator: &core.BasicAuthenticator{Username: "apikey", Password: "secret"},
			Logger:        logger.FromZap(zaptest.NewLogger(t)),
		},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return svc
}

func writeJSON(w http.ResponseWriter, status int, body string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = io.WriteString(w, body)
}

func TestRecognize(t *testing.T) {
	t.Parallel()

	r := chi.NewRouter()
	r.Post("/speech-to-text/api/v1/recognize", func(w http.ResponseWriter, req *http.Request) {
		q := req.URL.Query()
		if q.Has("version") {
			writeJSON(w, http.StatusBadRequest, `{"error":"unexpected version"}`)
			return
		}
		if q.Get("model") != "en-US_NarrowbandModel" || q.Get("timestamps") != "true" ||
			q.Get("keywords") != "colorado,tornado" || q.Get("keywords_threshold") != "0.5" {
			writeJSON(w, http.StatusBadRequest, `{"error":"bad query"}`)
			return
		}
		if req.Header.Get("Content-Type") != "audio/flac" {
			writeJSON(w, http.StatusUnsupportedMediaType, `{"error":"bad content type"}`)
			return
		}
		body, _ := io.ReadAll(req.Body)
		if string(body) != "fLaC-audio" {
			writeJSON(w, http.StatusBadRequest, `{"error":"bad body"}`)
			return
		}
		writeJSON(w, http.StatusOK, `{
			"result_index": 0,
			"results": [{
				"final": true,
				"alternatives": [{
					"transcript": "several tornadoes touch down ",
					"confidence": 0.96,
					"timestamps": [["several", 1.0, 1.51], ["tornadoes", 1.51, 2.15]]
				}]
			}]
		}`)
	})

	svc := newTestService(t, r)
	opts := NewRecognizeOptions(strings.NewReader("fLaC-audio"), "audio/flac").
		SetModel("en-US_NarrowbandModel").
		SetTimestamps(true).
		SetKeywords(0.5, "colorado", "tornado")

	result, resp, err := svc.Recognize(context.Background(), opts)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	if !result.IsFinal() || result.Transcript() != "several tornadoes touch down " {
		t.Fatalf("unexpected results: %+v", result)
	}
	ts := result.Results[0].Alternatives[0].Timestamps
	if len(ts) != 2 || ts[1].Word != "tornadoes" || ts[1].StartTime != 1.51 || ts[1].EndTime != 2.15 {
		t.Fatalf("unexpected timestamps: %+v", ts)
	}
}

func TestRecognitionParamsValidation(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name  string
		opts  *RecognizeOptions
		field string
	}{
		{"nil options", nil, "options"},
		{"missing audio", NewRecognizeOptions(nil, "audio/wav"), "audio"},
		{"missing content type", NewRecognizeOptions(strings.NewReader("x"), ""), "content_type"},
		{
			"keywords without threshold",
			&RecognizeOptions{
				RecognitionParams: RecognitionParams{Keywords: []string{"storm"}},
				Audio:             strings.NewReader("x"),
				ContentType:       "audio/wav",
			},
			"keywords_threshold",
		},
		{
			"weight out of range",
			&RecognizeOptions{
				RecognitionParams: RecognitionParams{CustomizationWeight: core.Float64Ptr(1.5)},
				Audio:             strings.NewReader("x"),
				ContentType:       "audio/wav",
			},
			"customization_weight",
		},
		{
			"zero alternatives",
			&RecognizeOptions{
				RecognitionParams: RecognitionParams{MaxAlternatives: core.Int64Ptr(0)},
				Audio:             strings.NewReader("x"),
				ContentType:       "audio/wav",
			},
			"max_alternatives",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var verr *core.ValidationError
			err := tc.opts.Validate()
			if !errors.As(err, &verr) || verr.Field != tc.field {
				t.Fatalf("expected %s validation error, got %v", tc.field, err)
			}
			if !errors.Is(err, core.ErrValidation) {
				t.Fatalf("expected ErrValidation, got %v", err)
			}
		})
	}
}

func TestCreateJobRequiresCallbackForEvents(t *testing.T) {
	t.Parallel()

	opts := NewCreateJobOptions(strings.NewReader("x"), "audio/wav")
	opts.Events = []string{EventRecognitionsCompleted}

	var verr *core.ValidationError
	if err := opts.Validate(); !errors.As(err, &verr) || verr.Field != "callback_url" {
		t.Fatalf("expected callback_url validation error, got %v", err)
	}
}

func TestCheckJob(t *testing.T) {
	t.Parallel()

	r := chi.NewRouter()
	r.Get("/speech-to-text/api/v1/recognitions/{id}", func(w http.ResponseWriter, req *http.Request) {
		if chi.URLParam(req, "id") != "job-1" {
			writeJSON(w, http.StatusNotFound, `{"error":"not found"}`)
			return
		}
		writeJSON(w, http.StatusOK, `{
			"id": "job-1",
			"status": "completed",
			"created": "2016-08-17T19:15:17.926Z",
			"results": [{"results": [{"final": true, "alternatives": [{"transcript": "done"}]}]}]
		}`)
	})

	svc := newTestService(t, r)
	job, _, err := svc.CheckJob(context.Background(), NewJobOptions("job-1"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if job.Status != JobStatusCompleted || len(job.Results) != 1 || job.Results[0].Transcript() != "done" {
		t.Fatalf("unexpected job: %+v", job)
	}

	_, resp, err := svc.CheckJob(context.Background(), NewJobOptions("missing"))
	if !errors.Is(err, core.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if resp == nil || resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404 response, got %+v", resp)
	}
}

func TestAddCorpus(t *testing.T) {
	t.Parallel()

	r := chi.NewRouter()
	r.Post("/speech-to-text/api/v1/customizations/{customization_id}/corpora/{corpus_name}", func(w http.ResponseWriter, req *http.Request) {
		if chi.URLParam(req, "customization_id") != "cust-1" || chi.URLParam(req, "corpus_name") != "weather" {
			writeJSON(w, http.StatusNotFound, `{"error":"not found"}`)
			return
		}
		if req.URL.Query().Get("allow_overwrite") != "true" {
			writeJSON(w, http.StatusBadRequest, `{"error":"overwrite expected"}`)
			return
		}
		file, _, err := req.FormFile("corpus_file")
		if err != nil {
			writeJSON(w, http.StatusBadRequest, `{"error":"missing corpus_file"}`)
			return
		}
		defer file.Close()
		data, _ := io.ReadAll(file)
		if string(data) != "heavy rain expected" {
			writeJSON(w, http.StatusBadRequest, `{"error":"bad corpus"}`)
			return
		}
		writeJSON(w, http.StatusCreated, `{}`)
	})

	svc := newTestService(t, r)
	opts := NewAddCorpusOptions("cust-1", "weather", strings.NewReader("heavy rain expected")).
		SetAllowOverwrite(true)

	resp, err := svc.AddCorpus(context.Background(), opts)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("expected 201, got %d", resp.StatusCode)
	}
}

func TestAddWords(t *testing.T) {
	t.Parallel()

	var verr *core.ValidationError
	if err := NewAddWordsOptions("cust-1").Validate(); !errors.As(err, &verr) || verr.Field != "words" {
		t.Fatalf("expected words validation error, got %v", err)
	}
	if err := NewAddWordsOptions("cust-1", CustomWord{DisplayAs: core.StringPtr("IEEE")}).Validate(); !errors.As(err, &verr) || verr.Field != "words.word" {
		t.Fatalf("expected words.word validation error, got %v", err)
	}

	r := chi.NewRouter()
	r.Post("/speech-to-text/api/v1/customizations/{customization_id}/words", func(w http.ResponseWriter, req *http.Request) {
		var body struct {
			Words []CustomWord `json:"words"`
		}
		if err := json.NewDecoder(req.Body).Decode(&body); err != nil || len(body.Words) != 2 {
			writeJSON(w, http.StatusBadRequest, `{"error":"bad body"}`)
			return
		}
		if *body.Words[0].Word != "HHonors" || body.Words[0].SoundsLike[0] != "hilton honors" {
			writeJSON(w, http.StatusBadRequest, `{"error":"bad word"}`)
			return
		}
		writeJSON(w, http.StatusCreated, `{}`)
	})

	svc := newTestService(t, r)
	_, err := svc.AddWords(context.Background(), NewAddWordsOptions("cust-1",
		CustomWord{Word: core.StringPtr("HHonors"), SoundsLike: []string{"hilton honors", "h honors"}},
		CustomWord{Word: core.StringPtr("IEEE"), DisplayAs: core.StringPtr("I triple E")},
	))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestAddWord(t *testing.T) {
	t.Parallel()

	r := chi.NewRouter()
	r.Put("/speech-to-text/api/v1/customizations/{customization_id}/words/{word_name}", func(w http.ResponseWriter, req *http.Request) {
		if chi.URLParam(req, "word_name") != "NCAA" {
			writeJSON(w, http.StatusNotFound, `{"error":"not found"}`)
			return
		}
		body, _ := io.ReadAll(req.Body)
		if string(body) != `{"sounds_like":["N. C. A. A.","N. C. double A."],"display_as":"NCAA"}` {
			writeJSON(w, http.StatusBadRequest, `{"error":"unexpected body"}`)
			return
		}
		writeJSON(w, http.StatusCreated, `{}`)
	})

	svc := newTestService(t, r)
	opts := NewAddWordOptions("cust-1", "NCAA").
		SetSoundsLike("N. C. A. A.", "N. C. double A.").
		SetDisplayAs("NCAA")
	if _, err := svc.AddWord(context.Background(), opts); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestListModelsUsesBasicAuth(t *testing.T) {
	t.Parallel()

	r := chi.NewRouter()
	r.Get("/speech-to-text/api/v1/models", func(w http.ResponseWriter, req *http.Request) {
		user, pass, ok := req.BasicAuth()
		if !ok || user != "apikey" || pass != "secret" {
			writeJSON(w, http.StatusUnauthorized, `{"error":"Unauthorized"}`)
			return
		}
		writeJSON(w, http.StatusOK, `{"models":[{
			"name": "en-US_BroadbandModel",
			"language": "en-US",
			"rate": 16000,
			"url": "https://example.test/v1/models/en-US_BroadbandModel",
			"supported_features": {"custom_language_model": true, "speaker_labels": true},
			"description": "US English broadband model."
		}]}`)
	})

	svc := newTestService(t, r)
	models, _, err := svc.ListModels(context.Background(), nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(models.Models) != 1 || models.Models[0].Rate != 16000 || !models.Models[0].SupportedFeatures.SpeakerLabels {
		t.Fatalf("unexpected models: %+v", models)
	}
}

func TestWordConfidenceRejectsShortPairs(t *testing.T) {
	t.Parallel()

	var wc WordConfidence
	if err := json.Unmarshal([]byte(`["storm"]`), &wc); err == nil {
		t.Fatal("expected error for a one-element pair")
	}
	if err := json.Unmarshal([]byte(`["storm", 0.87]`), &wc); err != nil || wc.Word != "storm" || wc.Confidence != 0.87 {
		t.Fatalf("unexpected decode: %+v, %v", wc, err)
	}
}
