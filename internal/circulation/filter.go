package circulation

import (
	"strings"

	"github.com/rupam905/libdesk/internal/api"
)

// FilterAvailable keeps only catalog items that can currently be issued.
func FilterAvailable(items []api.CatalogItem) []api.CatalogItem {
	out := make([]api.CatalogItem, 0, len(items))
	for _, item := range items {
		if item.Available() {
			out = append(out, item)
		}
	}
	return out
}

// FilterWorkingSet re-filters the cached working set locally by
// case-insensitive substring match. A blank field matches everything, so
// blank title and author return the working set untouched.
func FilterWorkingSet(items []api.CatalogItem, title, author string) []api.CatalogItem {
	title = strings.ToLower(strings.TrimSpace(title))
	author = strings.ToLower(strings.TrimSpace(author))
	if title == "" && author == "" {
		return items
	}
	out := make([]api.CatalogItem, 0, len(items))
	for _, item := range items {
		if title != "" && !strings.Contains(strings.ToLower(item.Name), title) {
			continue
		}
		if author != "" && !strings.Contains(strings.ToLower(item.Author), author) {
			continue
		}
		out = append(out, item)
	}
	return out
}

// OpenIssuesFor filters open issue records down to a single member.
func OpenIssuesFor(records []api.IssueRecord, membershipID string) []api.IssueRecord {
	membershipID = strings.TrimSpace(membershipID)
	out := make([]api.IssueRecord, 0, len(records))
	for _, rec := range records {
		if rec.Open() && rec.MembershipID == membershipID {
			out = append(out, rec)
		}
	}
	return out
}

// FindBySerial locates a catalog item in the given set.
func FindBySerial(items []api.CatalogItem, serialNo string) (api.CatalogItem, bool) {
	for _, item := range items {
		if item.SerialNo == serialNo {
			return item, true
		}
	}
	return api.CatalogItem{}, false
}
