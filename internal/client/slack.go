// Slack client used to announce CRITICAL reports in an ops channel.
//
// Environment:
//   - SLACK_BOT_TOKEN: Slack Bot Token (xoxb-...)
//   - SLACK_CHANNEL_ID: Slack channel ID (C...)
//   - SLACK_MESSAGE_TEMPLATE: optional headline template, see internal/template

package client

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/statuswatch/backend/internal/config"
	"github.com/statuswatch/backend/internal/model"
	"github.com/statuswatch/backend/internal/template"
)

const defaultMessageTemplate = ":rotating_light: CRITICAL status report #{{report.id}} by {{report.username}}"

type SlackClient struct {
	botToken        string
	channelID       string
	messageTemplate string
	httpClient      *http.Client
}

type SlackMessage struct {
	Channel     string            `json:"channel"`
	Text        string            `json:"text,omitempty"`
	Attachments []SlackAttachment `json:"attachments,omitempty"`
}

type SlackAttachment struct {
	Color  string       `json:"color"`
	Title  string       `json:"title"`
	Text   string       `json:"text"`
	Footer string       `json:"footer,omitempty"`
	Ts     int64        `json:"ts,omitempty"`
	Fields []SlackField `json:"fields,omitempty"`
}

type SlackField struct {
	Title string `json:"title"`
	Value string `json:"value"`
	Short bool   `json:"short"`
}

type SlackResponse struct {
	OK    bool   `json:"ok"`
	Error string `json:"error,omitempty"`
	TS    string `json:"ts,omitempty"`
}

func NewSlackClient(cfg config.SlackConfig) *SlackClient {
	messageTemplate := cfg.MessageTemplate
	if messageTemplate == "" {
		messageTemplate = defaultMessageTemplate
	}
	return &SlackClient{
		botToken:        cfg.BotToken,
		channelID:       cfg.ChannelID,
		messageTemplate: messageTemplate,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

func (c *SlackClient) IsConfigured() bool {
	return c.botToken != "" && c.channelID != ""
}

// NotifyCriticalReport posts a colored attachment for a report classified
// CRITICAL. Callers treat failures as best-effort.
func (c *SlackClient) NotifyCriticalReport(report *model.Report) error {
	if !c.IsConfigured() {
		return nil
	}
	data := template.ReportDataFromModel(report)
	headline := template.RenderBody(c.messageTemplate, &data)
	return c.send(buildCriticalReportMessage(c.channelID, headline, report))
}

func buildCriticalReportMessage(channelID, headline string, report *model.Report) SlackMessage {
	snap := report.Snapshot
	return SlackMessage{
		Channel: channelID,
		Text:    headline,
		Attachments: []SlackAttachment{
			{
				Color:  "#dc3545",
				Title:  fmt.Sprintf("System Status Report #%d", report.ID),
				Text:   "Overall status classified CRITICAL.",
				Footer: "statuswatch",
				Ts:     report.CreatedAt.Unix(),
				Fields: []SlackField{
					{Title: "CPU Utilization", Value: fmt.Sprintf("%.1f%%", snap.CPUUtilization), Short: true},
					{Title: "Memory Usage", Value: fmt.Sprintf("%.1f%%", snap.MemoryUsage), Short: true},
					{Title: "Error Rates", Value: fmt.Sprintf("%.2f", snap.ErrorRates), Short: true},
					{Title: "Network Availability", Value: fmt.Sprintf("%.1f%%", snap.NetworkAvailability), Short: true},
					{Title: "Issue Status", Value: string(report.IssueStatus), Short: true},
				},
			},
		},
	}
}

func (c *SlackClient) send(msg SlackMessage) error {
	payload, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("failed to marshal message: %w", err)
	}

	req, err := http.NewRequest("POST", "https://slack.com/api/chat.postMessage", bytes.NewBuffer(payload))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json; charset=utf-8")
	req.Header.Set("Authorization", "Bearer "+c.botToken)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send slack message: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read slack response: %w", err)
	}

	var slackResp SlackResponse
	if err := json.Unmarshal(body, &slackResp); err != nil {
		return fmt.Errorf("failed to parse slack response: %w", err)
	}
	if !slackResp.OK {
		return fmt.Errorf("slack API error: %s", slackResp.Error)
	}
	return nil
}
