package evaluator

import (
	"regexp"
	"strings"
	"time"

	"go.uber.org/zap"

	"automation-dashboard/internal/faults"
	"automation-dashboard/internal/model"
)

var (
	senderPattern     = regexp.MustCompile(`(?i)From:\s*([^\n]+)`)
	subjectPattern    = regexp.MustCompile(`(?i)Subject:\s*([^\n]+)`)
	datePattern       = regexp.MustCompile(`(?i)Date:\s*([^\n]+)`)
	attachmentPattern = regexp.MustCompile(`(?i)attachments?:\s*([^\n]+)`)

	actionItemPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)action items?:\s*([^\n]+)`),
		regexp.MustCompile(`(?i)todo:\s*([^\n]+)`),
		regexp.MustCompile(`(?i)follow up:\s*([^\n]+)`),
	}

	highPriorityKeywords = []string{"urgent", "asap", "critical", "emergency"}
)

// EmailParser extracts structured fields from raw email text.
type EmailParser struct {
	logger *zap.Logger
}

func NewEmailParser(logger *zap.Logger) *EmailParser {
	return &EmailParser{logger: logger}
}

// Parse extracts sender, subject, date, attachments, action items and
// priority from content. Empty or whitespace-only content is a validation
// failure.
func (p *EmailParser) Parse(content string) (*model.ParsedEmail, error) {
	if strings.TrimSpace(content) == "" {
		return nil, faults.Validation("email_content must not be empty")
	}

	parsed := &model.ParsedEmail{
		Sender:      extractField(senderPattern, content, "Unknown"),
		Subject:     extractField(subjectPattern, content, "No Subject"),
		Date:        extractField(datePattern, content, time.Now().UTC().Format(time.RFC3339)),
		Attachments: extractAttachments(content),
		ActionItems: extractActionItems(content),
		Priority:    determinePriority(content),
	}

	p.logger.Debug("Parsed email",
		zap.String("sender", parsed.Sender),
		zap.String("priority", parsed.Priority),
		zap.Int("action_items", len(parsed.ActionItems)),
	)
	return parsed, nil
}

func extractField(pattern *regexp.Regexp, content, fallback string) string {
	if m := pattern.FindStringSubmatch(content); m != nil {
		return strings.TrimSpace(m[1])
	}
	return fallback
}

// extractAttachments returns every match in document order; duplicates are
// preserved.
func extractAttachments(content string) []string {
	attachments := []string{}
	for _, m := range attachmentPattern.FindAllStringSubmatch(content, -1) {
		attachments = append(attachments, strings.TrimSpace(m[1]))
	}
	return attachments
}

// extractActionItems unions the three marker patterns, trimming each match
// and discarding empties and duplicates.
func extractActionItems(content string) []string {
	items := []string{}
	seen := make(map[string]struct{})
	for _, pattern := range actionItemPatterns {
		for _, m := range pattern.FindAllStringSubmatch(content, -1) {
			item := strings.TrimSpace(m[1])
			if item == "" {
				continue
			}
			if _, ok := seen[item]; ok {
				continue
			}
			seen[item] = struct{}{}
			items = append(items, item)
		}
	}
	return items
}

func determinePriority(content string) string {
	lower := strings.ToLower(content)
	for _, keyword := range highPriorityKeywords {
		if strings.Contains(lower, keyword) {
			return "high"
		}
	}
	return "normal"
}
