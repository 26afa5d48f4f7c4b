package slack

import (
	"encoding/json"
	"fmt"

	"envlogs/internal/model"
)

// Message is a Block Kit message posted to the incoming webhook.
// Text is the fallback used by notifications.
type Message struct {
	Channel string  `json:"channel"`
	Text    string  `json:"text"`
	Blocks  []Block `json:"blocks"`
}

// Block is a single Block Kit layout block. Only the block types this
// service emits (header, section, actions) are modeled.
type Block struct {
	Type     string      `json:"type"`
	Text     *TextObject `json:"text,omitempty"`
	Elements []Element   `json:"elements,omitempty"`
}

// TextObject is a Block Kit text composition object.
type TextObject struct {
	Type  string `json:"type"`
	Text  string `json:"text"`
	Emoji bool   `json:"emoji,omitempty"`
}

// Element is an interactive element inside an actions block.
type Element struct {
	Type     string      `json:"type"`
	Text     *TextObject `json:"text,omitempty"`
	Value    string      `json:"value,omitempty"`
	ActionID string      `json:"action_id,omitempty"`
	Style    string      `json:"style,omitempty"`
}

// EnvironmentReport pairs an environment with the outcome of listing its
// deployments. Err marks a failed deployments fetch. A nil Deployments
// slice means the API response carried no deployments field; an empty
// non-nil slice means the field was present and empty.
type EnvironmentReport struct {
	Environment model.Environment
	Deployments []model.Deployment
	Err         error
}

func header(text string) Block {
	return Block{
		Type: "header",
		Text: &TextObject{Type: "plain_text", Text: text, Emoji: true},
	}
}

func section(markdown string) Block {
	return Block{
		Type: "section",
		Text: &TextObject{Type: "mrkdwn", Text: markdown},
	}
}

// regionEmoji keeps the original per-region markers.
func regionEmoji(region string) string {
	if region == "us-east1" {
		return ":football:"
	}
	return ":soccer:"
}

// BuildLookupMessage renders the environment lookup result: a header, one
// section per environment, and one actions block per deployment with a
// get_logs button. Button values carry the environment ID, region, and
// deployment ID as JSON so the interaction handler can route the pull.
func BuildLookupMessage(channel string, reports []EnvironmentReport) Message {
	blocks := []Block{header("Select Environment to pull logs")}

	for _, rep := range reports {
		env := rep.Environment

		name := env.Name
		if name == "" {
			name = "Unknown Name"
		}
		id := env.ID
		if id == "" {
			id = "Unknown ID"
		}
		blocks = append(blocks, section(fmt.Sprintf("%s `%s : %s`", regionEmoji(env.Region), name, id)))

		if rep.Err != nil {
			blocks = append(blocks, section("*Error fetching deployments.*"))
			continue
		}
		// A nil slice means the API answered without a deployments field;
		// an empty one means the field was there with nothing in it.
		if rep.Deployments == nil {
			blocks = append(blocks, section("*No deployments found.*"))
			continue
		}
		if len(rep.Deployments) == 0 {
			blocks = append(blocks, section("_No deployments found for this environment._"))
			continue
		}

		for _, dep := range rep.Deployments {
			value, err := json.Marshal(ButtonValue{
				ID:         env.ID,
				Region:     env.Region,
				Deployment: dep.ID,
			})
			if err != nil {
				continue
			}

			style := "danger"
			if dep.State == "Primary" {
				style = "primary"
			}
			depName := dep.Name
			if depName == "" {
				depName = "Unnamed Deployment"
			}

			blocks = append(blocks, Block{
				Type: "actions",
				Elements: []Element{{
					Type:     "button",
					Text:     &TextObject{Type: "plain_text", Emoji: true, Text: "Get Logs for " + depName},
					Value:    string(value),
					ActionID: ActionGetLogs,
					Style:    style,
				}},
			})
		}
	}

	return Message{
		Channel: channel,
		Text:    "Get Support Details",
		Blocks:  blocks,
	}
}

// BuildExportMessage announces a finished log export with its download link.
func BuildExportMessage(channel string, export model.LogExport, downloadURL string) Message {
	blocks := []Block{
		header("Deployment logs ready"),
		section(fmt.Sprintf("%s `%s` deployment `%s` (%d lines)",
			regionEmoji(export.Region), export.EnvironmentID, export.DeploymentID, export.LineCount)),
		section(fmt.Sprintf("<%s|Download log archive>", downloadURL)),
	}
	return Message{
		Channel: channel,
		Text:    "Deployment logs ready",
		Blocks:  blocks,
	}
}
