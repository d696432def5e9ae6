package speechtotext

import (
	"io"
	"net/http"

	"github.com/yegors/watson-go/pkg/core"
)

func requireOptions(present bool) error {
	return core.RequireNotNil("options", present)
}

// RecognitionParams are the recognition settings shared by Recognize,
// CreateJob and the streaming interface
type RecognitionParams struct {
	Model                     *string
	CustomizationID           *string
	AcousticCustomizationID   *string
	BaseModelVersion          *string
	CustomizationWeight       *float64
	InactivityTimeout         *int64
	Keywords                  []string
	KeywordsThreshold         *float64
	MaxAlternatives           *int64
	WordAlternativesThreshold *float64
	WordConfidence            *bool
	Timestamps                *bool
	ProfanityFilter           *bool
	SmartFormatting           *bool
	SpeakerLabels             *bool
}

func (p *RecognitionParams) validate() error {
	if p.CustomizationWeight != nil && (*p.CustomizationWeight < 0 || *p.CustomizationWeight > 1) {
		return &core.ValidationError{Field: "customization_weight", Reason: "must be between 0.0 and 1.0"}
	}
	if len(p.Keywords) > 0 && p.KeywordsThreshold == nil {
		return &core.ValidationError{Field: "keywords_threshold", Reason: "required when keywords are set"}
	}
	if p.KeywordsThreshold != nil && (*p.KeywordsThreshold < 0 || *p.KeywordsThreshold > 1) {
		return &core.ValidationError{Field: "keywords_threshold", Reason: "must be between 0.0 and 1.0"}
	}
	if p.MaxAlternatives != nil && *p.MaxAlternatives < 1 {
		return &core.ValidationError{Field: "max_alternatives", Reason: "must be at least 1"}
	}
	return nil
}

// applyQuery adds every set parameter as a query param, the HTTP interface's
// encoding
func (p *RecognitionParams) applyQuery(b *core.RequestBuilder) {
	b.Optional().
		String("model", p.Model).
		String("customization_id", p.CustomizationID).
		String("acoustic_customization_id", p.AcousticCustomizationID).
		String("base_model_version", p.BaseModelVersion).
		Float64("customization_weight", p.CustomizationWeight).
		Int64("inactivity_timeout", p.InactivityTimeout).
		Strings("keywords", p.Keywords).
		Float64("keywords_threshold", p.KeywordsThreshold).
		Int64("max_alternatives", p.MaxAlternatives).
		Float64("word_alternatives_threshold", p.WordAlternativesThreshold).
		Bool("word_confidence", p.WordConfidence).
		Bool("timestamps", p.Timestamps).
		Bool("profanity_filter", p.ProfanityFilter).
		Bool("smart_formatting", p.SmartFormatting).
		Bool("speaker_labels", p.SpeakerLabels)
}

// GetModelOptions configures GetModel
type GetModelOptions struct {
	ModelID string
	Headers http.Header
}

func NewGetModelOptions(modelID string) *GetModelOptions {
	return &GetModelOptions{ModelID: modelID}
}

func (o *GetModelOptions) Validate() error {
	if err := requireOptions(o != nil); err != nil {
		return err
	}
	return core.RequireString("model_id", o.ModelID)
}

// RecognizeOptions configures the sessionless Recognize call
type RecognizeOptions struct {
	RecognitionParams
	Audio       io.Reader
	ContentType string
	Headers     http.Header
}

func NewRecognizeOptions(audio io.Reader, contentType string) *RecognizeOptions {
	return &RecognizeOptions{Audio: audio, ContentType: contentType}
}

func (o *RecognizeOptions) SetModel(model string) *RecognizeOptions {
	o.Model = core.StringPtr(model)
	return o
}

func (o *RecognizeOptions) SetTimestamps(v bool) *RecognizeOptions {
	o.Timestamps = core.BoolPtr(v)
	return o
}

func (o *RecognizeOptions) SetWordConfidence(v bool) *RecognizeOptions {
	o.WordConfidence = core.BoolPtr(v)
	return o
}

func (o *RecognizeOptions) SetKeywords(threshold float64, keywords ...string) *RecognizeOptions {
	o.Keywords = keywords
	o.KeywordsThreshold = core.Float64Ptr(threshold)
	return o
}

func (o *RecognizeOptions) Validate() error {
	if err := requireOptions(o != nil); err != nil {
		return err
	}
	if err := core.RequireNotNil("audio", o.Audio != nil); err != nil {
		return err
	}
	if err := core.RequireString("content_type", o.ContentType); err != nil {
		return err
	}
	return o.RecognitionParams.validate()
}

// RegisterCallbackOptions configures RegisterCallback
type RegisterCallbackOptions struct {
	CallbackURL string
	UserSecret  *string
	Headers     http.Header
}

func NewRegisterCallbackOptions(callbackURL string) *RegisterCallbackOptions {
	return &RegisterCallbackOptions{CallbackURL: callbackURL}
}

func (o *RegisterCallbackOptions) SetUserSecret(secret string) *RegisterCallbackOptions {
	o.UserSecret = core.StringPtr(secret)
	return o
}

func (o *RegisterCallbackOptions) Validate() error {
	if err := requireOptions(o != nil); err != nil {
		return err
	}
	return core.RequireString("callback_url", o.CallbackURL)
}

// UnregisterCallbackOptions configures UnregisterCallback
type UnregisterCallbackOptions struct {
	CallbackURL string
	Headers     http.Header
}

func NewUnregisterCallbackOptions(callbackURL string) *UnregisterCallbackOptions {
	return &UnregisterCallbackOptions{CallbackURL: callbackURL}
}

func (o *UnregisterCallbackOptions) Validate() error {
	if err := requireOptions(o != nil); err != nil {
		return err
	}
	return core.RequireString("callback_url", o.CallbackURL)
}

// Job notification events
const (
	EventRecognitionsStarted              = "recognitions.started"
	EventRecognitionsCompleted            = "recognitions.completed"
	EventRecognitionsCompletedWithResults = "recognitions.completed_with_results"
	EventRecognitionsFailed               = "recognitions.failed"
)

// CreateJobOptions configures CreateJob
type CreateJobOptions struct {
	RecognitionParams
	Audio       io.Reader
	ContentType string
	CallbackURL *string
	Events      []string
	UserToken   *string
	ResultsTTL  *int64
	Headers     http.Header
}

func NewCreateJobOptions(audio io.Reader, contentType string) *CreateJobOptions {
	return &CreateJobOptions{Audio: audio, ContentType: contentType}
}

func (o *CreateJobOptions) SetCallbackURL(callbackURL string, events ...string) *CreateJobOptions {
	o.CallbackURL = core.StringPtr(callbackURL)
	o.Events = events
	return o
}

func (o *CreateJobOptions) Validate() error {
	if err := requireOptions(o != nil); err != nil {
		return err
	}
	if err := core.RequireNotNil("audio", o.Audio != nil); err != nil {
		return err
	}
	if err := core.RequireString("content_type", o.ContentType); err != nil {
		return err
	}
	if len(o.Events) > 0 && o.CallbackURL == nil {
		return &core.ValidationError{Field: "callback_url", Reason: "required when events are set"}
	}
	return o.RecognitionParams.validate()
}

// JobOptions addresses one asynchronous job. It configures CheckJob and
// DeleteJob.
type JobOptions struct {
	ID      string
	Headers http.Header
}

func NewJobOptions(id string) *JobOptions {
	return &JobOptions{ID: id}
}

func (o *JobOptions) Validate() error {
	if err := requireOptions(o != nil); err != nil {
		return err
	}
	return core.RequireString("id", o.ID)
}

// CreateLanguageModelOptions configures CreateLanguageModel
type CreateLanguageModelOptions struct {
	Name          string
	BaseModelName string
	Dialect       *string
	Description   *string
	Headers       http.Header
}

func NewCreateLanguageModelOptions(name, baseModelName string) *CreateLanguageModelOptions {
	return &CreateLanguageModelOptions{Name: name, BaseModelName: baseModelName}
}

func (o *CreateLanguageModelOptions) SetDescription(description string) *CreateLanguageModelOptions {
	o.Description = core.StringPtr(description)
	return o
}

func (o *CreateLanguageModelOptions) Validate() error {
	if err := requireOptions(o != nil); err != nil {
		return err
	}
	if err := core.RequireString("name", o.Name); err != nil {
		return err
	}
	return core.RequireString("base_model_name", o.BaseModelName)
}

// ListCustomizationsOptions configures ListLanguageModels and
// ListAcousticModels
type ListCustomizationsOptions struct {
	Language *string
	Headers  http.Header
}

func (o *ListCustomizationsOptions) Validate() error { return nil }

// CustomizationOptions addresses one custom model, language or acoustic
type CustomizationOptions struct {
	CustomizationID string
	Headers         http.Header
}

func NewCustomizationOptions(customizationID string) *CustomizationOptions {
	return &CustomizationOptions{CustomizationID: customizationID}
}

func (o *CustomizationOptions) Validate() error {
	if err := requireOptions(o != nil); err != nil {
		return err
	}
	return core.RequireString("customization_id", o.CustomizationID)
}

// TrainLanguageModelOptions configures TrainLanguageModel
type TrainLanguageModelOptions struct {
	CustomizationID     string
	WordTypeToAdd       *string
	CustomizationWeight *float64
	Headers             http.Header
}

func NewTrainLanguageModelOptions(customizationID string) *TrainLanguageModelOptions {
	return &TrainLanguageModelOptions{CustomizationID: customizationID}
}

func (o *TrainLanguageModelOptions) SetWordTypeToAdd(wordType string) *TrainLanguageModelOptions {
	o.WordTypeToAdd = core.StringPtr(wordType)
	return o
}

func (o *TrainLanguageModelOptions) Validate() error {
	if err := requireOptions(o != nil); err != nil {
		return err
	}
	if err := core.RequireString("customization_id", o.CustomizationID); err != nil {
		return err
	}
	if o.CustomizationWeight != nil && (*o.CustomizationWeight < 0 || *o.CustomizationWeight > 1) {
		return &core.ValidationError{Field: "customization_weight", Reason: "must be between 0.0 and 1.0"}
	}
	return nil
}

// AddCorpusOptions configures AddCorpus
type AddCorpusOptions struct {
	CustomizationID string
	CorpusName      string
	CorpusFile      io.Reader
	AllowOverwrite  *bool
	Headers         http.Header
}

func NewAddCorpusOptions(customizationID, corpusName string, corpusFile io.Reader) *AddCorpusOptions {
	return &AddCorpusOptions{CustomizationID: customizationID, CorpusName: corpusName, CorpusFile: corpusFile}
}

func (o *AddCorpusOptions) SetAllowOverwrite(v bool) *AddCorpusOptions {
	o.AllowOverwrite = core.BoolPtr(v)
	return o
}

func (o *AddCorpusOptions) Validate() error {
	if err := requireOptions(o != nil); err != nil {
		return err
	}
	if err := core.RequireString("customization_id", o.CustomizationID); err != nil {
		return err
	}
	if err := core.RequireString("corpus_name", o.CorpusName); err != nil {
		return err
	}
	return core.RequireNotNil("corpus_file", o.CorpusFile != nil)
}

// CorpusOptions addresses one corpus. It configures GetCorpus and DeleteCorpus.
type CorpusOptions struct {
	CustomizationID string
	CorpusName      string
	Headers         http.Header
}

func NewCorpusOptions(customizationID, corpusName string) *CorpusOptions {
	return &CorpusOptions{CustomizationID: customizationID, CorpusName: corpusName}
}

func (o *CorpusOptions) Validate() error {
	if err := requireOptions(o != nil); err != nil {
		return err
	}
	if err := core.RequireString("customization_id", o.CustomizationID); err != nil {
		return err
	}
	return core.RequireString("corpus_name", o.CorpusName)
}

// AddWordsOptions configures AddWords
type AddWordsOptions struct {
	CustomizationID string
	Words           []CustomWord
	Headers         http.Header
}

func NewAddWordsOptions(customizationID string, words ...CustomWord) *AddWordsOptions {
	return &AddWordsOptions{CustomizationID: customizationID, Words: words}
}

func (o *AddWordsOptions) Validate() error {
	if err := requireOptions(o != nil); err != nil {
		return err
	}
	if err := core.RequireString("customization_id", o.CustomizationID); err != nil {
		return err
	}
	if len(o.Words) == 0 {
		return &core.ValidationError{Field: "words"}
	}
	for _, w := range o.Words {
		if w.Word == nil || *w.Word == "" {
			return &core.ValidationError{Field: "words.word"}
		}
	}
	return nil
}

// AddWordOptions configures AddWord
type AddWordOptions struct {
	CustomizationID string
	WordName        string
	SoundsLike      []string
	DisplayAs       *string
	Headers         http.Header
}

func NewAddWordOptions(customizationID, wordName string) *AddWordOptions {
	return &AddWordOptions{CustomizationID: customizationID, WordName: wordName}
}

func (o *AddWordOptions) SetSoundsLike(soundsLike ...string) *AddWordOptions {
	o.SoundsLike = soundsLike
	return o
}

func (o *AddWordOptions) SetDisplayAs(displayAs string) *AddWordOptions {
	o.DisplayAs = core.StringPtr(displayAs)
	return o
}

func (o *AddWordOptions) Validate() error {
	if err := requireOptions(o != nil); err != nil {
		return err
	}
	if err := core.RequireString("customization_id", o.CustomizationID); err != nil {
		return err
	}
	return core.RequireString("word_name", o.WordName)
}

// ListWordsOptions configures ListWords
type ListWordsOptions struct {
	CustomizationID string
	WordType        *string
	Sort            *string
	Headers         http.Header
}

func NewListWordsOptions(customizationID string) *ListWordsOptions {
	return &ListWordsOptions{CustomizationID: customizationID}
}

func (o *ListWordsOptions) SetWordType(wordType string) *ListWordsOptions {
	o.WordType = core.StringPtr(wordType)
	return o
}

func (o *ListWordsOptions) SetSort(sort string) *ListWordsOptions {
	o.Sort = core.StringPtr(sort)
	return o
}

func (o *ListWordsOptions) Validate() error {
	if err := requireOptions(o != nil); err != nil {
		return err
	}
	return core.RequireString("customization_id", o.CustomizationID)
}

// WordOptions addresses one custom word. It configures GetWord and DeleteWord.
type WordOptions struct {
	CustomizationID string
	WordName        string
	Headers         http.Header
}

func NewWordOptions(customizationID, wordName string) *WordOptions {
	return &WordOptions{CustomizationID: customizationID, WordName: wordName}
}

func (o *WordOptions) Validate() error {
	if err := requireOptions(o != nil); err != nil {
		return err
	}
	if err := core.RequireString("customization_id", o.CustomizationID); err != nil {
		return err
	}
	return core.RequireString("word_name", o.WordName)
}

// CreateAcousticModelOptions configures CreateAcousticModel
type CreateAcousticModelOptions struct {
	Name          string
	BaseModelName string
	Description   *string
	Headers       http.Header
}

func NewCreateAcousticModelOptions(name, baseModelName string) *CreateAcousticModelOptions {
	return &CreateAcousticModelOptions{Name: name, BaseModelName: baseModelName}
}

func (o *CreateAcousticModelOptions) Validate() error {
	if err := requireOptions(o != nil); err != nil {
		return err
	}
	if err := core.RequireString("name", o.Name); err != nil {
		return err
	}
	return core.RequireString("base_model_name", o.BaseModelName)
}

// TrainAcousticModelOptions configures TrainAcousticModel
type TrainAcousticModelOptions struct {
	CustomizationID       string
	CustomLanguageModelID *string
	Headers               http.Header
}

func NewTrainAcousticModelOptions(customizationID string) *TrainAcousticModelOptions {
	return &TrainAcousticModelOptions{CustomizationID: customizationID}
}

func (o *TrainAcousticModelOptions) SetCustomLanguageModelID(id string) *TrainAcousticModelOptions {
	o.CustomLanguageModelID = core.StringPtr(id)
	return o
}

func (o *TrainAcousticModelOptions) Validate() error {
	if err := requireOptions(o != nil); err != nil {
		return err
	}
	return core.RequireString("customization_id", o.CustomizationID)
}

// AddAudioOptions configures AddAudio. ContainedContentType applies to
// archives (application/zip, application/gzip) and names the type of the
// files inside.
type AddAudioOptions struct {
	CustomizationID      string
	AudioName            string
	AudioResource        io.Reader
	ContentType          string
	ContainedContentType *string
	AllowOverwrite       *bool
	Headers              http.Header
}

func NewAddAudioOptions(customizationID, audioName string, audio io.Reader, contentType string) *AddAudioOptions {
	return &AddAudioOptions{
		CustomizationID: customizationID,
		AudioName:       audioName,
		AudioResource:   audio,
		ContentType:     contentType,
	}
}

func (o *AddAudioOptions) SetAllowOverwrite(v bool) *AddAudioOptions {
	o.AllowOverwrite = core.BoolPtr(v)
	return o
}

func (o *AddAudioOptions) Validate() error {
	if err := requireOptions(o != nil); err != nil {
		return err
	}
	if err := core.RequireString("customization_id", o.CustomizationID); err != nil {
		return err
	}
	if err := core.RequireString("audio_name", o.AudioName); err != nil {
		return err
	}
	if err := core.RequireNotNil("audio_resource", o.AudioResource != nil); err != nil {
		return err
	}
	return core.RequireString("content_type", o.ContentType)
}

// AudioOptions addresses one audio resource. It configures DeleteAudio.
type AudioOptions struct {
	CustomizationID string
	AudioName       string
	Headers         http.Header
}

func NewAudioOptions(customizationID, audioName string) *AudioOptions {
	return &AudioOptions{CustomizationID: customizationID, AudioName: audioName}
}

func (o *AudioOptions) Validate() error {
	if err := requireOptions(o != nil); err != nil {
		return err
	}
	if err := core.RequireString("customization_id", o.CustomizationID); err != nil {
		return err
	}
	return core.RequireString("audio_name", o.AudioName)
}
