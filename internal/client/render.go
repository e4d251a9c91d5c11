package client

import (
	"fmt"
	"io"
	"time"

	"github.com/opsdesk/agentdesk/internal/handler/dto"
)

const (
	// previewItems is how many items of a distribution are shown inline.
	previewItems = 3

	// notesPreviewLen is the display cap for an item's notes field.
	notesPreviewLen = 50
)

// TruncateNotes caps notes at notesPreviewLen runes, appending an ellipsis
// marker when the text was cut.
func TruncateNotes(notes string) string {
	runes := []rune(notes)
	if len(runes) <= notesPreviewLen {
		return notes
	}
	return string(runes[:notesPreviewLen]) + "..."
}

func formatDate(t time.Time) string {
	return t.Local().Format("2006-01-02 15:04")
}

// RenderListSummary writes the one-line summary of an uploaded list: file
// name, total items, agent count, and date.
func RenderListSummary(w io.Writer, list *dto.ListResponse) {
	fmt.Fprintf(w, "%s  %s  %d items across %d agents  %s\n",
		list.ID, list.FileName, list.TotalItems, len(list.Distributions), formatDate(list.CreatedAt))
}

// RenderListExpanded writes the full view of one list: the summary followed by
// every distribution with a preview of at most the first three items.
func RenderListExpanded(w io.Writer, list *dto.ListResponse) {
	RenderListSummary(w, list)
	for i := range list.Distributions {
		RenderDistribution(w, &list.Distributions[i])
	}
}

// RenderDistribution writes one agent's share: identity, assigned count, item
// preview, and a remainder line when more than previewItems exist.
func RenderDistribution(w io.Writer, dist *dto.DistributionResponse) {
	fmt.Fprintf(w, "  %s <%s>: %d assigned\n", dist.AgentName, dist.AgentEmail, dist.AssignedCount)

	shown := dist.Items
	if len(shown) > previewItems {
		shown = shown[:previewItems]
	}
	for _, item := range shown {
		line := fmt.Sprintf("    - %s  %s", item.FirstName, item.Phone)
		if item.Notes != "" {
			line += "  (" + TruncateNotes(item.Notes) + ")"
		}
		fmt.Fprintln(w, line)
	}
	if remaining := len(dist.Items) - previewItems; remaining > 0 {
		fmt.Fprintf(w, "    ... and %d more items\n", remaining)
	}
}

// RenderUploadResult writes the success summary shown right after an upload.
func RenderUploadResult(w io.Writer, result *dto.UploadResponse) {
	fmt.Fprintf(w, "File uploaded successfully! %d items distributed among %d agents.\n",
		result.TotalItems, len(result.Distributions))
	for i := range result.Distributions {
		RenderDistribution(w, &result.Distributions[i])
	}
}

// RenderAgents writes the agent roster.
func RenderAgents(w io.Writer, agents []dto.AgentResponse) {
	if len(agents) == 0 {
		fmt.Fprintln(w, "No agents found. Get started by adding your first agent.")
		return
	}
	for _, agent := range agents {
		status := "active"
		if !agent.IsActive {
			status = "inactive"
		}
		fmt.Fprintf(w, "%s  %s <%s>  %s  %s  added %s\n",
			agent.ID, agent.Name, agent.Email, agent.Mobile, status, formatDate(agent.CreatedAt))
	}
}

// RenderStats writes the dashboard aggregates and the recent uploads.
func RenderStats(w io.Writer, stats *dto.StatsResponse) {
	fmt.Fprintf(w, "Agents: %d  Lists: %d  Items: %d\n", stats.TotalAgents, stats.TotalLists, stats.TotalItems)
	if len(stats.RecentLists) == 0 {
		return
	}
	fmt.Fprintln(w, "Recent uploads:")
	for i := range stats.RecentLists {
		RenderListSummary(w, &stats.RecentLists[i])
	}
}
