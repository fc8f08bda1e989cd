package jira //nolint:testpackage // tests unexported functions

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rios0rios0/vermap/internal/domain/entities"
)

func TestJiraTrackerRepository(t *testing.T) {
	t.Parallel()

	t.Run("Name", func(t *testing.T) {
		t.Parallel()

		t.Run("should return jira", func(t *testing.T) {
			t.Parallel()

			// given
			c := NewJiraTrackerRepository(entities.TrackerSettings{
				BaseURL: "https://issues.example.com",
			})

			// when
			name := c.Name()

			// then
			assert.Equal(t, "jira", name)
		})
	})

	t.Run("NewJiraTrackerRepository", func(t *testing.T) {
		t.Parallel()

		t.Run("should strip the trailing slash from the base URL", func(t *testing.T) {
			t.Parallel()

			// given
			tracker := entities.TrackerSettings{BaseURL: "https://issues.example.com/"}

			// when
			c := NewJiraTrackerRepository(tracker)

			// then
			assert.Equal(t, "https://issues.example.com", c.baseURL)
		})

		t.Run("should keep a base URL without a trailing slash", func(t *testing.T) {
			t.Parallel()

			// given
			tracker := entities.TrackerSettings{BaseURL: "https://issues.example.com"}

			// when
			c := NewJiraTrackerRepository(tracker)

			// then
			assert.Equal(t, "https://issues.example.com", c.baseURL)
		})
	})
}

func TestIssueFieldsMarshal(t *testing.T) {
	t.Parallel()

	t.Run("should carry the full field set for a create request", func(t *testing.T) {
		t.Parallel()

		// given
		request := issueRequest{
			Fields: issueFields{
				Project:     &projectField{Key: "PROJ"},
				Summary:     "builder: torch package update request",
				Description: "Requested Package Name and Version:\n\ntorch>=2.7.1\n",
				IssueType:   &issueTypeField{Name: issueTypeEpic},
			},
		}

		// when
		data, err := json.Marshal(request)

		// then
		require.NoError(t, err)
		payload := string(data)
		assert.Contains(t, payload, `"project":{"key":"PROJ"}`)
		assert.Contains(t, payload, `"issuetype":{"name":"Epic"}`)
		assert.Contains(t, payload, `"summary":"builder: torch package update request"`)
		assert.NotContains(t, payload, "assignee")
		assert.NotContains(t, payload, "labels")
		assert.NotContains(t, payload, "components")
	})

	t.Run("should omit unset fields so updates stay partial", func(t *testing.T) {
		t.Parallel()

		// given
		request := issueRequest{
			Fields: issueFields{
				Assignee: &userField{Name: "release-bot"},
				Labels:   []string{"dependencies"},
			},
		}

		// when
		data, err := json.Marshal(request)

		// then
		require.NoError(t, err)
		payload := string(data)
		assert.Contains(t, payload, `"assignee":{"name":"release-bot"}`)
		assert.Contains(t, payload, `"labels":["dependencies"]`)
		assert.NotContains(t, payload, "project")
		assert.NotContains(t, payload, "summary")
		assert.NotContains(t, payload, "issuetype")
	})

	t.Run("should serialize components by name", func(t *testing.T) {
		t.Parallel()

		// given
		request := issueRequest{
			Fields: issueFields{
				Components: []componentField{{Name: "Release"}, {Name: "Dependencies"}},
			},
		}

		// when
		data, err := json.Marshal(request)

		// then
		require.NoError(t, err)
		assert.Contains(
			t,
			string(data),
			`"components":[{"name":"Release"},{"name":"Dependencies"}]`,
		)
	})
}
