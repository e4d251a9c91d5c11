package client_test

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/opsdesk/agentdesk/internal/client"
	"github.com/opsdesk/agentdesk/internal/handler/dto"
	"github.com/stretchr/testify/assert"
)

func TestTruncateNotes(t *testing.T) {
	exactly50 := strings.Repeat("x", 50)
	assert.Equal(t, exactly50, client.TruncateNotes(exactly50))

	over := strings.Repeat("x", 51)
	got := client.TruncateNotes(over)
	assert.Equal(t, strings.Repeat("x", 50)+"...", got)

	assert.Equal(t, "", client.TruncateNotes(""))
	assert.Equal(t, "short", client.TruncateNotes("short"))
}

func sampleDistribution(itemCount int) dto.DistributionResponse {
	dist := dto.DistributionResponse{
		AgentID:       "a1",
		AgentName:     "Alice",
		AgentEmail:    "alice@example.com",
		AssignedCount: itemCount,
	}
	for i := 0; i < itemCount; i++ {
		dist.Items = append(dist.Items, dto.ItemResponse{
			FirstName: "Contact",
			Phone:     "+14155550101",
			Notes:     "note",
		})
	}
	return dist
}

func TestRenderDistribution_PreviewsFirstThree(t *testing.T) {
	var buf bytes.Buffer
	dist := sampleDistribution(5)
	client.RenderDistribution(&buf, &dist)

	out := buf.String()
	assert.Contains(t, out, "Alice <alice@example.com>: 5 assigned")
	assert.Equal(t, 3, strings.Count(out, "+14155550101"))
	assert.Contains(t, out, "... and 2 more items")
}

func TestRenderDistribution_NoRemainderLine(t *testing.T) {
	var buf bytes.Buffer
	dist := sampleDistribution(3)
	client.RenderDistribution(&buf, &dist)

	out := buf.String()
	assert.Equal(t, 3, strings.Count(out, "+14155550101"))
	assert.NotContains(t, out, "more items")
}

func TestRenderDistribution_LongNotesTruncated(t *testing.T) {
	var buf bytes.Buffer
	dist := sampleDistribution(1)
	dist.Items[0].Notes = strings.Repeat("n", 80)
	client.RenderDistribution(&buf, &dist)

	assert.Contains(t, buf.String(), strings.Repeat("n", 50)+"...")
	assert.NotContains(t, buf.String(), strings.Repeat("n", 51))
}

func TestRenderListSummary(t *testing.T) {
	var buf bytes.Buffer
	list := dto.ListResponse{
		ID:         "list-1",
		FileName:   "contacts.csv",
		TotalItems: 10,
		CreatedAt:  time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
		Distributions: []dto.DistributionResponse{
			sampleDistribution(4), sampleDistribution(3), sampleDistribution(3),
		},
	}
	client.RenderListSummary(&buf, &list)

	out := buf.String()
	assert.Contains(t, out, "contacts.csv")
	assert.Contains(t, out, "10 items across 3 agents")
}

func TestRenderUploadResult(t *testing.T) {
	var buf bytes.Buffer
	result := dto.UploadResponse{
		TotalItems: 10,
		Distributions: []dto.DistributionResponse{
			sampleDistribution(4), sampleDistribution(3), sampleDistribution(3),
		},
	}
	client.RenderUploadResult(&buf, &result)

	assert.Contains(t, buf.String(), "10 items distributed among 3 agents")
}
