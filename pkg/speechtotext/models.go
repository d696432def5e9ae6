package speechtotext

import (
	"encoding/json"
	"fmt"
	"time"
)

// Job and customization statuses
const (
	JobStatusWaiting    = "waiting"
	JobStatusProcessing = "processing"
	JobStatusCompleted  = "completed"
	JobStatusFailed     = "failed"

	CustomizationStatusPending   = "pending"
	CustomizationStatusReady     = "ready"
	CustomizationStatusTraining  = "training"
	CustomizationStatusAvailable = "available"
	CustomizationStatusUpgrading = "upgrading"
	CustomizationStatusFailed    = "failed"
)

// Word types accepted by TrainLanguageModel and ListWords
const (
	WordTypeAll      = "all"
	WordTypeUser     = "user"
	WordTypeCorpora  = "corpora"
	WordTypeGrammars = "grammars"
)

type SupportedFeatures struct {
	CustomLanguageModel bool `json:"custom_language_model"`
	SpeakerLabels       bool `json:"speaker_labels"`
}

type SpeechModel struct {
	Name              string            `json:"name"`
	Language          string            `json:"language"`
	Rate              int64             `json:"rate"`
	URL               string            `json:"url"`
	SupportedFeatures SupportedFeatures `json:"supported_features"`
	Description       string            `json:"description"`
	Sessions          *string           `json:"sessions,omitempty"`
}

type SpeechModels struct {
	Models []SpeechModel `json:"models"`
}

// WordTimestamp decodes the ["word", start, end] triples of timestamps
type WordTimestamp struct {
	Word      string
	StartTime float64
	EndTime   float64
}

func (w *WordTimestamp) UnmarshalJSON(data []byte) error {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if len(raw) != 3 {
		return fmt.Errorf("word timestamp must have 3 elements, got %d", len(raw))
	}
	if err := json.Unmarshal(raw[0], &w.Word); err != nil {
		return err
	}
	if err := json.Unmarshal(raw[1], &w.StartTime); err != nil {
		return err
	}
	return json.Unmarshal(raw[2], &w.EndTime)
}

func (w WordTimestamp) MarshalJSON() ([]byte, error) {
	return json.Marshal([]any{w.Word, w.StartTime, w.EndTime})
}

// WordConfidence decodes the ["word", confidence] pairs of word_confidence
type WordConfidence struct {
	Word       string
	Confidence float64
}

func (w *WordConfidence) UnmarshalJSON(data []byte) error {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if len(raw) != 2 {
		return fmt.Errorf("word confidence must have 2 elements, got %d", len(raw))
	}
	if err := json.Unmarshal(raw[0], &w.Word); err != nil {
		return err
	}
	return json.Unmarshal(raw[1], &w.Confidence)
}

func (w WordConfidence) MarshalJSON() ([]byte, error) {
	return json.Marshal([]any{w.Word, w.Confidence})
}

type SpeechRecognitionAlternative struct {
	Transcript     string           `json:"transcript"`
	Confidence     *float64         `json:"confidence,omitempty"`
	Timestamps     []WordTimestamp  `json:"timestamps,omitempty"`
	WordConfidence []WordConfidence `json:"word_confidence,omitempty"`
}

type KeywordResult struct {
	NormalizedText string  `json:"normalized_text"`
	StartTime      float64 `json:"start_time"`
	EndTime        float64 `json:"end_time"`
	Confidence     float64 `json:"confidence"`
}

type WordAlternativeResult struct {
	Confidence float64 `json:"confidence"`
	Word       string  `json:"word"`
}

type WordAlternativeResults struct {
	StartTime    float64                 `json:"start_time"`
	EndTime      float64                 `json:"end_time"`
	Alternatives []WordAlternativeResult `json:"alternatives"`
}

type SpeechRecognitionResult struct {
	Final            bool                           `json:"final"`
	Alternatives     []SpeechRecognitionAlternative `json:"alternatives"`
	KeywordsResult   map[string][]KeywordResult     `json:"keywords_result,omitempty"`
	WordAlternatives []WordAlternativeResults       `json:"word_alternatives,omitempty"`
}

type SpeakerLabelsResult struct {
	From       float64 `json:"from"`
	To         float64 `json:"to"`
	Speaker    int64   `json:"speaker"`
	Confidence float64 `json:"confidence"`
	Final      bool    `json:"final"`
}

// SpeechRecognitionResults is the payload of a recognize call and of every
// results frame on the streaming interface
type SpeechRecognitionResults struct {
	Results       []SpeechRecognitionResult `json:"results,omitempty"`
	ResultIndex   *int64                    `json:"result_index,omitempty"`
	SpeakerLabels []SpeakerLabelsResult     `json:"speaker_labels,omitempty"`
	Warnings      []string                  `json:"warnings,omitempty"`
}

// Transcript joins the best alternative of every result
func (r *SpeechRecognitionResults) Transcript() string {
	if r == nil {
		return ""
	}
	var text string
	for _, res := range r.Results {
		if len(res.Alternatives) == 0 {
			continue
		}
		text += res.Alternatives[0].Transcript
	}
	return text
}

// IsFinal reports whether every result in the frame is final
func (r *SpeechRecognitionResults) IsFinal() bool {
	if r == nil || len(r.Results) == 0 {
		return false
	}
	for _, res := range r.Results {
		if !res.Final {
			return false
		}
	}
	return true
}

type RegisterStatus struct {
	Status string `json:"status"`
	URL    string `json:"url"`
}

type RecognitionJob struct {
	ID        string                     `json:"id"`
	Status    string                     `json:"status"`
	Created   string                     `json:"created"`
	Updated   *string                    `json:"updated,omitempty"`
	URL       *string                    `json:"url,omitempty"`
	UserToken *string                    `json:"user_token,omitempty"`
	Results   []SpeechRecognitionResults `json:"results,omitempty"`
	Warnings  []string                   `json:"warnings,omitempty"`
}

type RecognitionJobs struct {
	Recognitions []RecognitionJob `json:"recognitions"`
}

type LanguageModel struct {
	CustomizationID string     `json:"customization_id"`
	Created         *time.Time `json:"created,omitempty"`
	Language        *string    `json:"language,omitempty"`
	Dialect         *string    `json:"dialect,omitempty"`
	Versions        []string   `json:"versions,omitempty"`
	Owner           *string    `json:"owner,omitempty"`
	Name            *string    `json:"name,omitempty"`
	Description     *string    `json:"description,omitempty"`
	BaseModelName   *string    `json:"base_model_name,omitempty"`
	Status          *string    `json:"status,omitempty"`
	Progress        *int64     `json:"progress,omitempty"`
	Warnings        *string    `json:"warnings,omitempty"`
}

type LanguageModels struct {
	Customizations []LanguageModel `json:"customizations"`
}

type Corpus struct {
	Name                 string  `json:"name"`
	TotalWords           int64   `json:"total_words"`
	OutOfVocabularyWords int64   `json:"out_of_vocabulary_words"`
	Status               string  `json:"status"`
	Error                *string `json:"error,omitempty"`
}

type Corpora struct {
	Corpora []Corpus `json:"corpora"`
}

// CustomWord is a word to add to a custom language model
type CustomWord struct {
	Word       *string  `json:"word,omitempty"`
	SoundsLike []string `json:"sounds_like,omitempty"`
	DisplayAs  *string  `json:"display_as,omitempty"`
}

type WordError struct {
	Element string `json:"element"`
}

type Word struct {
	Word       string      `json:"word"`
	SoundsLike []string    `json:"sounds_like"`
	DisplayAs  string      `json:"display_as"`
	Count      int64       `json:"count"`
	Source     []string    `json:"source"`
	Error      []WordError `json:"error,omitempty"`
}

type Words struct {
	Words []Word `json:"words"`
}

type AcousticModel struct {
	CustomizationID string     `json:"customization_id"`
	Created         *time.Time `json:"created,omitempty"`
	Language        *string    `json:"language,omitempty"`
	Versions        []string   `json:"versions,omitempty"`
	Owner           *string    `json:"owner,omitempty"`
	Name            *string    `json:"name,omitempty"`
	Description     *string    `json:"description,omitempty"`
	BaseModelName   *string    `json:"base_model_name,omitempty"`
	Status          *string    `json:"status,omitempty"`
	Progress        *int64     `json:"progress,omitempty"`
	Warnings        *string    `json:"warnings,omitempty"`
}

type AcousticModels struct {
	Customizations []AcousticModel `json:"customizations"`
}

type AudioDetails struct {
	AudioType   *string `json:"type,omitempty"`
	Codec       *string `json:"codec,omitempty"`
	Frequency   *int64  `json:"frequency,omitempty"`
	Compression *string `json:"compression,omitempty"`
}

type AudioResource struct {
	Duration float64      `json:"duration"`
	Name     string       `json:"name"`
	Details  AudioDetails `json:"details"`
	Status   string       `json:"status"`
}

type AudioResources struct {
	TotalMinutesOfAudio float64         `json:"total_minutes_of_audio"`
	Audio               []AudioResource `json:"audio"`
}
