package jira

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rios0rios0/vermap/internal/domain/entities"
	"github.com/rios0rios0/vermap/internal/domain/repositories"
)

const (
	trackerName     = "jira"
	issueTypeEpic   = "Epic"
	createIssuePath = "/rest/api/2/issue"
)

// JiraTrackerRepository implements repositories.TrackerRepository against the
// Jira REST API using a personal access token.
type JiraTrackerRepository struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

// NewJiraTrackerRepository creates a Jira client for the configured instance.
func NewJiraTrackerRepository(tracker entities.TrackerSettings) *JiraTrackerRepository {
	return &JiraTrackerRepository{
		baseURL: strings.TrimSuffix(tracker.BaseURL, "/"),
		token:   tracker.Token,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

func (c *JiraTrackerRepository) Name() string { return trackerName }

type projectField struct {
	Key string `json:"key"`
}

type issueTypeField struct {
	Name string `json:"name"`
}

type userField struct {
	Name string `json:"name"`
}

type componentField struct {
	Name string `json:"name"`
}

// issueFields carries the subset of issue fields the tool writes. Empty
// fields stay off the wire so partial updates do not clear existing values.
type issueFields struct {
	Project     *projectField    `json:"project,omitempty"`
	Summary     string           `json:"summary,omitempty"`
	Description string           `json:"description,omitempty"`
	IssueType   *issueTypeField  `json:"issuetype,omitempty"`
	Assignee    *userField       `json:"assignee,omitempty"`
	Labels      []string         `json:"labels,omitempty"`
	Components  []componentField `json:"components,omitempty"`
}

type issueRequest struct {
	Fields issueFields `json:"fields"`
}

// CreateTicket opens an epic carrying the drafted body and returns its key.
// Assignment metadata is applied afterwards via UpdateTicketMetadata.
func (c *JiraTrackerRepository) CreateTicket(
	ctx context.Context,
	ticket *entities.TicketRecord,
	meta repositories.TicketMetadata,
) (string, error) {
	request := issueRequest{
		Fields: issueFields{
			Project:     &projectField{Key: meta.Project},
			Summary:     meta.Title,
			Description: ticket.Body,
			IssueType:   &issueTypeField{Name: issueTypeEpic},
		},
	}

	respBody, err := c.doRequest(ctx, http.MethodPost, createIssuePath, request)
	if err != nil {
		return "", fmt.Errorf("failed to create issue: %w", err)
	}

	var created struct {
		Key string `json:"key"`
	}
	if err = json.Unmarshal(respBody, &created); err != nil {
		return "", fmt.Errorf("failed to parse create response: %w", err)
	}
	if created.Key == "" {
		return "", errors.New("issue created without a key")
	}

	return created.Key, nil
}

// UpdateTicketMetadata applies assignee, label, and components to an existing
// issue.
func (c *JiraTrackerRepository) UpdateTicketMetadata(
	ctx context.Context,
	key string,
	meta repositories.TicketMetadata,
) error {
	var fields issueFields
	if meta.Assignee != "" {
		fields.Assignee = &userField{Name: meta.Assignee}
	}
	if meta.Label != "" {
		fields.Labels = []string{meta.Label}
	}
	for _, name := range meta.Components {
		fields.Components = append(fields.Components, componentField{Name: name})
	}

	_, err := c.doRequest(ctx, http.MethodPut, createIssuePath+"/"+key, issueRequest{Fields: fields})
	if err != nil {
		return fmt.Errorf("failed to update issue %s: %w", key, err)
	}
	return nil
}

func (c *JiraTrackerRepository) doRequest(
	ctx context.Context,
	method, endpoint string,
	body interface{},
) ([]byte, error) {
	var reqBody io.Reader
	if body != nil {
		jsonBody, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request body: %w", err)
		}
		reqBody = bytes.NewReader(jsonBody)
	}

	url := c.baseURL + endpoint
	req, err := http.NewRequestWithContext(ctx, method, url, reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("API error (status %d): %s", resp.StatusCode, string(respBody))
	}

	return respBody, nil
}
