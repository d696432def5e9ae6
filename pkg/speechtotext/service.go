// Package speechtotext is a client for the Watson Speech to Text v1 API.
// Besides the REST operations it offers RecognizeUsingWebSocket, which
// streams audio over a websocket and reports results through a callback.
package speechtotext

import (
	"context"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/yegors/watson-go/pkg/core"
	"github.com/yegors/watson-go/pkg/logger"
)

const DefaultServiceURL = "https://stream.watsonplatform.net/speech-to-text/api"

// Options configures the service client. Speech to Text is not versioned by
// date, so unlike the other services there is no Version.
type Options struct {
	core.ServiceOptions
}

type Service struct {
	base   *core.BaseService
	dialer *websocket.Dialer
	logger *logger.Logger
}

func NewService(opts *Options) (*Service, error) {
	if opts == nil {
		return nil, &core.ValidationError{Field: "options", Reason: "cannot be nil"}
	}
	base, err := core.NewBaseService(&opts.ServiceOptions, DefaultServiceURL)
	if err != nil {
		return nil, err
	}
	return &Service{
		base: base,
		dialer: &websocket.Dialer{
			Proxy:            http.ProxyFromEnvironment,
			HandshakeTimeout: 30 * time.Second,
		},
		logger: base.Logger().Named("stt"),
	}, nil
}

func (s *Service) Base() *core.BaseService { return s.base }

func (s *Service) newRequest(method, path string, pathParams map[string]string) (*core.RequestBuilder, error) {
	b := core.NewRequestBuilder(method)
	if _, err := b.ResolveRequestURL(s.base.ServiceURL(), path, pathParams); err != nil {
		return nil, err
	}
	return b, nil
}

// call runs a request whose only result is the detailed response
func (s *Service) call(ctx context.Context, method, path string, pathParams map[string]string, headers http.Header) (*core.DetailedResponse, error) {
	b, err := s.newRequest(method, path, pathParams)
	if err != nil {
		return nil, err
	}
	return s.base.Call(ctx, b, headers, nil)
}

func customizationParams(id string) map[string]string {
	return map[string]string{"customization_id": id}
}

func (s *Service) ListModels(ctx context.Context, headers http.Header) (*SpeechModels, *core.DetailedResponse, error) {
	b, err := s.newRequest(http.MethodGet, "/v1/models", nil)
	if err != nil {
		return nil, nil, err
	}

	var result SpeechModels
	resp, err := s.base.Call(ctx, b, headers, &result)
	if err != nil {
		return nil, resp, err
	}
	return &result, resp, nil
}

func (s *Service) GetModel(ctx context.Context, opts *GetModelOptions) (*SpeechModel, *core.DetailedResponse, error) {
	if err := opts.Validate(); err != nil {
		return nil, nil, err
	}
	b, err := s.newRequest(http.MethodGet, "/v1/models/{model_id}", map[string]string{"model_id": opts.ModelID})
	if err != nil {
		return nil, nil, err
	}

	var result SpeechModel
	resp, err := s.base.Call(ctx, b, opts.Headers, &result)
	if err != nil {
		return nil, resp, err
	}
	return &result, resp, nil
}

// Recognize sends a whole audio file and waits for the transcript
func (s *Service) Recognize(ctx context.Context, opts *RecognizeOptions) (*SpeechRecognitionResults, *core.DetailedResponse, error) {
	if err := opts.Validate(); err != nil {
		return nil, nil, err
	}
	b, err := s.newRequest(http.MethodPost, "/v1/recognize", nil)
	if err != nil {
		return nil, nil, err
	}
	opts.RecognitionParams.applyQuery(b)
	b.SetBodyContent(opts.ContentType, opts.Audio)

	var result SpeechRecognitionResults
	resp, err := s.base.Call(ctx, b, opts.Headers, &result)
	if err != nil {
		return nil, resp, err
	}
	s.logger.Debug("Audio recognized",
		logger.String("content_type", opts.ContentType),
		logger.Int("results", len(result.Results)))
	return &result, resp, nil
}

// RegisterCallback allowlists a callback URL for asynchronous jobs
func (s *Service) RegisterCallback(ctx context.Context, opts *RegisterCallbackOptions) (*RegisterStatus, *core.DetailedResponse, error) {
	if err := opts.Validate(); err != nil {
		return nil, nil, err
	}
	b, err := s.newRequest(http.MethodPost, "/v1/register_callback", nil)
	if err != nil {
		return nil, nil, err
	}
	b.AddQuery("callback_url", opts.CallbackURL)
	b.Optional().String("user_secret", opts.UserSecret)

	var result RegisterStatus
	resp, err := s.base.Call(ctx, b, opts.Headers, &result)
	if err != nil {
		return nil, resp, err
	}
	return &result, resp, nil
}

func (s *Service) UnregisterCallback(ctx context.Context, opts *UnregisterCallbackOptions) (*core.DetailedResponse, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	b, err := s.newRequest(http.MethodPost, "/v1/unregister_callback", nil)
	if err != nil {
		return nil, err
	}
	b.AddQuery("callback_url", opts.CallbackURL)
	return s.base.Call(ctx, b, opts.Headers, nil)
}

// CreateJob starts an asynchronous recognition
func (s *Service) CreateJob(ctx context.Context, opts *CreateJobOptions) (*RecognitionJob, *core.DetailedResponse, error) {
	if err := opts.Validate(); err != nil {
		return nil, nil, err
	}
	b, err := s.newRequest(http.MethodPost, "/v1/recognitions", nil)
	if err != nil {
		return nil, nil, err
	}
	b.Optional().
		String("callback_url", opts.CallbackURL).
		Strings("events", opts.Events).
		String("user_token", opts.UserToken).
		Int64("results_ttl", opts.ResultsTTL)
	opts.RecognitionParams.applyQuery(b)
	b.SetBodyContent(opts.ContentType, opts.Audio)

	var result RecognitionJob
	resp, err := s.base.Call(ctx, b, opts.Headers, &result)
	if err != nil {
		return nil, resp, err
	}
	s.logger.Info("Recognition job created",
		logger.String("job_id", result.ID),
		logger.String("status", result.Status))
	return &result, resp, nil
}

func (s *Service) CheckJobs(ctx context.Context, headers http.Header) (*RecognitionJobs, *core.DetailedResponse, error) {
	b, err := s.newRequest(http.MethodGet, "/v1/recognitions", nil)
	if err != nil {
		return nil, nil, err
	}

	var result RecognitionJobs
	resp, err := s.base.Call(ctx, b, headers, &result)
	if err != nil {
		return nil, resp, err
	}
	return &result, resp, nil
}

func (s *Service) CheckJob(ctx context.Context, opts *JobOptions) (*RecognitionJob, *core.DetailedResponse, error) {
	if err := opts.Validate(); err != nil {
		return nil, nil, err
	}
	b, err := s.newRequest(http.MethodGet, "/v1/recognitions/{id}", map[string]string{"id": opts.ID})
	if err != nil {
		return nil, nil, err
	}

	var result RecognitionJob
	resp, err := s.base.Call(ctx, b, opts.Headers, &result)
	if err != nil {
		return nil, resp, err
	}
	return &result, resp, nil
}

func (s *Service) DeleteJob(ctx context.Context, opts *JobOptions) (*core.DetailedResponse, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	return s.call(ctx, http.MethodDelete, "/v1/recognitions/{id}", map[string]string{"id": opts.ID}, opts.Headers)
}

type customModelBody struct {
	Name          string  `json:"name"`
	BaseModelName string  `json:"base_model_name"`
	Dialect       *string `json:"dialect,omitempty"`
	Description   *string `json:"description,omitempty"`
}

func (s *Service) CreateLanguageModel(ctx context.Context, opts *CreateLanguageModelOptions) (*LanguageModel, *core.DetailedResponse, error) {
	if err := opts.Validate(); err != nil {
		return nil, nil, err
	}
	b, err := s.newRequest(http.MethodPost, "/v1/customizations", nil)
	if err != nil {
		return nil, nil, err
	}
	b.SetBodyContentJSON(customModelBody{
		Name:          opts.Name,
		BaseModelName: opts.BaseModelName,
		Dialect:       opts.Dialect,
		Description:   opts.Description,
	})

	var result LanguageModel
	resp, err := s.base.Call(ctx, b, opts.Headers, &result)
	if err != nil {
		return nil, resp, err
	}
	return &result, resp, nil
}

func (s *Service) ListLanguageModels(ctx context.Context, opts *ListCustomizationsOptions) (*LanguageModels, *core.DetailedResponse, error) {
	if opts == nil {
		opts = &ListCustomizationsOptions{}
	}
	b, err := s.newRequest(http.MethodGet, "/v1/customizations", nil)
	if err != nil {
		return nil, nil, err
	}
	b.Optional().String("language", opts.Language)

	var result LanguageModels
	resp, err := s.base.Call(ctx, b, opts.Headers, &result)
	if err != nil {
		return nil, resp, err
	}
	return &result, resp, nil
}

func (s *Service) GetLanguageModel(ctx context.Context, opts *CustomizationOptions) (*LanguageModel, *core.DetailedResponse, error) {
	if err := opts.Validate(); err != nil {
		return nil, nil, err
	}
	b, err := s.newRequest(http.MethodGet, "/v1/customizations/{customization_id}", customizationParams(opts.CustomizationID))
	if err != nil {
		return nil, nil, err
	}

	var result LanguageModel
	resp, err := s.base.Call(ctx, b, opts.Headers, &result)
	if err != nil {
		return nil, resp, err
	}
	return &result, resp, nil
}

func (s *Service) DeleteLanguageModel(ctx context.Context, opts *CustomizationOptions) (*core.DetailedResponse, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	return s.call(ctx, http.MethodDelete, "/v1/customizations/{customization_id}", customizationParams(opts.CustomizationID), opts.Headers)
}

// TrainLanguageModel starts training; poll GetLanguageModel for completion
func (s *Service) TrainLanguageModel(ctx context.Context, opts *TrainLanguageModelOptions) (*core.DetailedResponse, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	b, err := s.newRequest(http.MethodPost, "/v1/customizations/{customization_id}/train", customizationParams(opts.CustomizationID))
	if err != nil {
		return nil, err
	}
	b.Optional().
		String("word_type_to_add", opts.WordTypeToAdd).
		Float64("customization_weight", opts.CustomizationWeight)
	return s.base.Call(ctx, b, opts.Headers, nil)
}

func (s *Service) ResetLanguageModel(ctx context.Context, opts *CustomizationOptions) (*core.DetailedResponse, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	return s.call(ctx, http.MethodPost, "/v1/customizations/{customization_id}/reset", customizationParams(opts.CustomizationID), opts.Headers)
}

func (s *Service) UpgradeLanguageModel(ctx context.Context, opts *CustomizationOptions) (*core.DetailedResponse, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	return s.call(ctx, http.MethodPost, "/v1/customizations/{customization_id}/upgrade_model", customizationParams(opts.CustomizationID), opts.Headers)
}

// AddCorpus uploads a plain-text corpus to a custom language model
func (s *Service) AddCorpus(ctx context.Context, opts *AddCorpusOptions) (*core.DetailedResponse, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	b, err := s.newRequest(http.MethodPost, "/v1/customizations/{customization_id}/corpora/{corpus_name}",
		map[string]string{"customization_id": opts.CustomizationID, "corpus_name": opts.CorpusName})
	if err != nil {
		return nil, err
	}
	b.Optional().Bool("allow_overwrite", opts.AllowOverwrite)
	b.AddFormData("corpus_file", opts.CorpusName, "text/plain", opts.CorpusFile)
	return s.base.Call(ctx, b, opts.Headers, nil)
}

func (s *Service) ListCorpora(ctx context.Context, opts *CustomizationOptions) (*Corpora, *core.DetailedResponse, error) {
	if err := opts.Validate(); err != nil {
		return nil, nil, err
	}
	b, err := s.newRequest(http.MethodGet, "/v1/customizations/{customization_id}/corpora", customizationParams(opts.CustomizationID))
	if err != nil {
		return nil, nil, err
	}

	var result Corpora
	resp, err := s.base.Call(ctx, b, opts.Headers, &result)
	if err != nil {
		return nil, resp, err
	}
	return &result, resp, nil
}

func (s *Service) GetCorpus(ctx context.Context, opts *CorpusOptions) (*Corpus, *core.DetailedResponse, error) {
	if err := opts.Validate(); err != nil {
		return nil, nil, err
	}
	b, err := s.newRequest(http.MethodGet, "/v1/customizations/{customization_id}/corpora/{corpus_name}",
		map[string]string{"customization_id": opts.CustomizationID, "corpus_name": opts.CorpusName})
	if err != nil {
		return nil, nil, err
	}

	var result Corpus
	resp, err := s.base.Call(ctx, b, opts.Headers, &result)
	if err != nil {
		return nil, resp, err
	}
	return &result, resp, nil
}

func (s *Service) DeleteCorpus(ctx context.Context, opts *CorpusOptions) (*core.DetailedResponse, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	return s.call(ctx, http.MethodDelete, "/v1/customizations/{customization_id}/corpora/{corpus_name}",
		map[string]string{"customization_id": opts.CustomizationID, "corpus_name": opts.CorpusName}, opts.Headers)
}

func (s *Service) AddWords(ctx context.Context, opts *AddWordsOptions) (*core.DetailedResponse, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	b, err := s.newRequest(http.MethodPost, "/v1/customizations/{customization_id}/words", customizationParams(opts.CustomizationID))
	if err != nil {
		return nil, err
	}
	b.SetBodyContentJSON(struct {
		Words []CustomWord `json:"words"`
	}{opts.Words})
	return s.base.Call(ctx, b, opts.Headers, nil)
}

// AddWord adds or replaces a single word; the word itself is the path
func (s *Service) AddWord(ctx context.Context, opts *AddWordOptions) (*core.DetailedResponse, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	b, err := s.newRequest(http.MethodPut, "/v1/customizations/{customization_id}/words/{word_name}",
		map[string]string{"customization_id": opts.CustomizationID, "word_name": opts.WordName})
	if err != nil {
		return nil, err
	}
	b.SetBodyContentJSON(CustomWord{SoundsLike: opts.SoundsLike, DisplayAs: opts.DisplayAs})
	return s.base.Call(ctx, b, opts.Headers, nil)
}

func (s *Service) ListWords(ctx context.Context, opts *ListWordsOptions) (*Words, *core.DetailedResponse, error) {
	if err := opts.Validate(); err != nil {
		return nil, nil, err
	}
	b, err := s.newRequest(http.MethodGet, "/v1/customizations/{customization_id}/words", customizationParams(opts.CustomizationID))
	if err != nil {
		return nil, nil, err
	}
	b.Optional().
		String("word_type", opts.WordType).
		String("sort", opts.Sort)

	var result Words
	resp, err := s.base.Call(ctx, b, opts.Headers, &result)
	if err != nil {
		return nil, resp, err
	}
	return &result, resp, nil
}

func (s *Service) GetWord(ctx context.Context, opts *WordOptions) (*Word, *core.DetailedResponse, error) {
	if err := opts.Validate(); err != nil {
		return nil, nil, err
	}
	b, err := s.newRequest(http.MethodGet, "/v1/customizations/{customization_id}/words/{word_name}",
		map[string]string{"customization_id": opts.CustomizationID, "word_name": opts.WordName})
	if err != nil {
		return nil, nil, err
	}

	var result Word
	resp, err := s.base.Call(ctx, b, opts.Headers, &result)
	if err != nil {
		return nil, resp, err
	}
	return &result, resp, nil
}

func (s *Service) DeleteWord(ctx context.Context, opts *WordOptions) (*core.DetailedResponse, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	return s.call(ctx, http.MethodDelete, "/v1/customizations/{customization_id}/words/{word_name}",
		map[string]string{"customization_id": opts.CustomizationID, "word_name": opts.WordName}, opts.Headers)
}

func (s *Service) CreateAcousticModel(ctx context.Context, opts *CreateAcousticModelOptions) (*AcousticModel, *core.DetailedResponse, error) {
	if err := opts.Validate(); err != nil {
		return nil, nil, err
	}
	b, err := s.newRequest(http.MethodPost, "/v1/acoustic_customizations", nil)
	if err != nil {
		return nil, nil, err
	}
	b.SetBodyContentJSON(customModelBody{
		Name:          opts.Name,
		BaseModelName: opts.BaseModelName,
		Description:   opts.Description,
	})

	var result AcousticModel
	resp, err := s.base.Call(ctx, b, opts.Headers, &result)
	if err != nil {
		return nil, resp, err
	}
	return &result, resp, nil
}

func (s *Service) ListAcousticModels(ctx context.Context, opts *ListCustomizationsOptions) (*AcousticModels, *core.DetailedResponse, error) {
	if opts == nil {
		opts = &ListCustomizationsOptions{}
	}
	b, err := s.newRequest(http.MethodGet, "/v1/acoustic_customizations", nil)
	if err != nil {
		return nil, nil, err
	}
	b.Optional().String("language", opts.Language)

	var result AcousticModels
	resp, err := s.base.Call(ctx, b, opts.Headers, &result)
	if err != nil {
		return nil, resp, err
	}
	return &result, resp, nil
}

func (s *Service) GetAcousticModel(ctx context.Context, opts *CustomizationOptions) (*AcousticModel, *core.DetailedResponse, error) {
	if err := opts.Validate(); err != nil {
		return nil, nil, err
	}
	b, err := s.newRequest(http.MethodGet, "/v1/acoustic_customizations/{customization_id}", customizationParams(opts.CustomizationID))
	if err != nil {
		return nil, nil, err
	}

	var result AcousticModel
	resp, err := s.base.Call(ctx, b, opts.Headers, &result)
	if err != nil {
		return nil, resp, err
	}
	return &result, resp, nil
}

func (s *Service) DeleteAcousticModel(ctx context.Context, opts *CustomizationOptions) (*core.DetailedResponse, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	return s.call(ctx, http.MethodDelete, "/v1/acoustic_customizations/{customization_id}", customizationParams(opts.CustomizationID), opts.Headers)
}

func (s *Service) TrainAcousticModel(ctx context.Context, opts *TrainAcousticModelOptions) (*core.DetailedResponse, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	b, err := s.newRequest(http.MethodPost, "/v1/acoustic_customizations/{customization_id}/train", customizationParams(opts.CustomizationID))
	if err != nil {
		return nil, err
	}
	b.Optional().String("custom_language_model_id", opts.CustomLanguageModelID)
	return s.base.Call(ctx, b, opts.Headers, nil)
}

func (s *Service) ResetAcousticModel(ctx context.Context, opts *CustomizationOptions) (*core.DetailedResponse, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	return s.call(ctx, http.MethodPost, "/v1/acoustic_customizations/{customization_id}/reset", customizationParams(opts.CustomizationID), opts.Headers)
}

// AddAudio uploads an audio file or archive to a custom acoustic model
func (s *Service) AddAudio(ctx context.Context, opts *AddAudioOptions) (*core.DetailedResponse, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	b, err := s.newRequest(http.MethodPost, "/v1/acoustic_customizations/{customization_id}/audio/{audio_name}",
		map[string]string{"customization_id": opts.CustomizationID, "audio_name": opts.AudioName})
	if err != nil {
		return nil, err
	}
	b.Optional().Bool("allow_overwrite", opts.AllowOverwrite)
	if opts.ContainedContentType != nil {
		b.AddHeader("Contained-Content-Type", *opts.ContainedContentType)
	}
	b.SetBodyContent(opts.ContentType, opts.AudioResource)
	return s.base.Call(ctx, b, opts.Headers, nil)
}

func (s *Service) ListAudio(ctx context.Context, opts *CustomizationOptions) (*AudioResources, *core.DetailedResponse, error) {
	if err := opts.Validate(); err != nil {
		return nil, nil, err
	}
	b, err := s.newRequest(http.MethodGet, "/v1/acoustic_customizations/{customization_id}/audio", customizationParams(opts.CustomizationID))
	if err != nil {
		return nil, nil, err
	}

	var result AudioResources
	resp, err := s.base.Call(ctx, b, opts.Headers, &result)
	if err != nil {
		return nil, resp, err
	}
	return &result, resp, nil
}

func (s *Service) DeleteAudio(ctx context.Context, opts *AudioOptions) (*core.DetailedResponse, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	return s.call(ctx, http.MethodDelete, "/v1/acoustic_customizations/{customization_id}/audio/{audio_name}",
		map[string]string{"customization_id": opts.CustomizationID, "audio_name": opts.AudioName}, opts.Headers)
}
