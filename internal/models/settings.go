package models

import "strconv"

// Settings is the single blob round-tripped wholesale to the server on
// every mutation. The read map is keyed by the channel id's decimal form,
// matching the JSON object the server stores.
type Settings struct {
	Theme               string           `json:"theme"`
	Read                map[string]int64 `json:"read"`
	AIModel             string           `json:"aiModel"`
	AIPrompt            string           `json:"aiPrompt"`
	RequirementChannels []int64          `json:"requirementChannels"`
}

// DefaultSettings mirrors the server-side defaults used before the first
// save.
func DefaultSettings() Settings {
	return Settings{
		Theme:   "dark",
		Read:    map[string]int64{},
		AIModel: "qwen2.5:14b-instruct",
		AIPrompt: "You are a professional assistant. Based on the conversation " +
			"below, suggest a concise reply (under 50 words):",
		RequirementChannels: []int64{},
	}
}

// ReadCount returns the persisted read position for a channel, zero when
// the channel was never opened.
func (s Settings) ReadCount(channelID int64) int64 {
	return s.Read[strconv.FormatInt(channelID, 10)]
}

// SetRead records the read position for a channel.
func (s *Settings) SetRead(channelID, total int64) {
	if s.Read == nil {
		s.Read = map[string]int64{}
	}
	s.Read[strconv.FormatInt(channelID, 10)] = total
}

// IsRequirementChannel reports whether the channel feeds the requirement
// tracker rather than the visible chat list.
func (s Settings) IsRequirementChannel(channelID int64) bool {
	for _, id := range s.RequirementChannels {
		if id == channelID {
			return true
		}
	}
	return false
}
