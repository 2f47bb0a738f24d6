package dto

type Voice struct {
	VoiceType string `json:"voiceType"`
	SampleURL string `json:"sampleUrl"`
}

type VoicesResponse struct {
	Voices []Voice `json:"voices"`
}
