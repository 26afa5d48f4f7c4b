package slack

import (
	"encoding/json"
	"fmt"
	"net/url"
)

// ActionGetLogs is the action_id carried by the per-deployment buttons.
const ActionGetLogs = "get_logs"

// SlashCommand is the form-encoded payload Slack sends for a slash command.
// Only the fields this service reads are modeled.
type SlashCommand struct {
	Command  string
	Text     string
	UserID   string
	UserName string
}

// ParseSlashCommand decodes an application/x-www-form-urlencoded body.
func ParseSlashCommand(body []byte) (SlashCommand, error) {
	values, err := url.ParseQuery(string(body))
	if err != nil {
		return SlashCommand{}, fmt.Errorf("parse slash command body: %w", err)
	}
	return SlashCommand{
		Command:  values.Get("command"),
		Text:     values.Get("text"),
		UserID:   values.Get("user_id"),
		UserName: values.Get("user_name"),
	}, nil
}

// Interaction is the JSON document Slack sends in the "payload" form field
// of an interactivity callback (block_actions).
type Interaction struct {
	Type string `json:"type"`
	User struct {
		ID       string `json:"id"`
		Username string `json:"username"`
	} `json:"user"`
	Actions []Action `json:"actions"`
}

// Action is one triggered block action.
type Action struct {
	ActionID string `json:"action_id"`
	Value    string `json:"value"`
}

// ButtonValue is the JSON document serialized into a get_logs button value.
type ButtonValue struct {
	ID         string `json:"id"`
	Region     string `json:"region"`
	Deployment string `json:"deployment"`
}

// ParseInteraction decodes an interactivity callback body. Slack wraps the
// JSON payload in a form field named "payload".
func ParseInteraction(body []byte) (Interaction, error) {
	values, err := url.ParseQuery(string(body))
	if err != nil {
		return Interaction{}, fmt.Errorf("parse interaction body: %w", err)
	}
	raw := values.Get("payload")
	if raw == "" {
		return Interaction{}, fmt.Errorf("interaction body missing payload field")
	}

	var in Interaction
	if err := json.Unmarshal([]byte(raw), &in); err != nil {
		return Interaction{}, fmt.Errorf("decode interaction payload: %w", err)
	}
	return in, nil
}

// ButtonValue decodes the action's value field.
func (a Action) ButtonValue() (ButtonValue, error) {
	var v ButtonValue
	if err := json.Unmarshal([]byte(a.Value), &v); err != nil {
		return ButtonValue{}, fmt.Errorf("decode button value: %w", err)
	}
	return v, nil
}

// Response is an ephemeral or in-channel reply to a slash command.
type Response struct {
	ResponseType string `json:"response_type"`
	Text         string `json:"text"`
}

// Ephemeral builds a reply visible only to the invoking user.
func Ephemeral(text string) Response {
	return Response{ResponseType: "ephemeral", Text: text}
}
