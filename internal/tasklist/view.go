package tasklist

import (
	"sort"
	"strings"

	"github.com/adanyl0v/taskboard/internal/models"
)

// Page is one rendered page of the filtered, sorted list.
type Page struct {
	Items []models.Task
	// Number is the page shown, after clamping.
	Number    int
	PageCount int
	// Total is the number of tasks that passed the filters.
	Total int
	// Offset is the index of Items[0] within the filtered list.
	Offset int
}

// View derives the visible page from s. It doesn't modify s.
func View(s State) Page {
	filtered := Filter(s.Snapshot, s.Search, s.StatusFilter)
	SortByDueDate(filtered, s.SortAsc)
	return Paginate(filtered, s.Page, s.PageSize)
}

// Filter returns the tasks whose title contains search, ignoring case,
// and whose status equals status when status is set. The result is a
// new slice in snapshot order.
func Filter(snapshot []models.Task, search string, status models.Status) []models.Task {
	needle := strings.ToLower(search)
	out := make([]models.Task, 0, len(snapshot))
	for _, t := range snapshot {
		if !strings.Contains(strings.ToLower(t.Title), needle) {
			continue
		}
		if status != "" && t.Status != status {
			continue
		}
		out = append(out, t)
	}
	return out
}

// SortByDueDate orders tasks in place by due date. The sort isn't
// stable: tasks due the same day come out in no particular order.
// Unparseable dates sort as the zero time.
func SortByDueDate(tasks []models.Task, asc bool) {
	due := make(map[string]int64, len(tasks))
	key := func(t *models.Task) int64 {
		v, ok := due[t.DueDate]
		if !ok {
			v = t.DueTime().Unix()
			due[t.DueDate] = v
		}
		return v
	}

	sort.Slice(tasks, func(i, j int) bool {
		if asc {
			return key(&tasks[i]) < key(&tasks[j])
		}
		return key(&tasks[i]) > key(&tasks[j])
	})
}

// PageCount returns ceil(total/pageSize).
func PageCount(total, pageSize int) int {
	if total <= 0 || pageSize <= 0 {
		return 0
	}
	return (total + pageSize - 1) / pageSize
}

// ClampPage limits page to [1, PageCount], or 1 when there is nothing
// to show.
func ClampPage(page, total, pageSize int) int {
	count := PageCount(total, pageSize)
	if count == 0 || page < 1 {
		return 1
	}
	if page > count {
		return count
	}
	return page
}

// Paginate returns page number page of tasks, clamped to the valid range.
func Paginate(tasks []models.Task, page, pageSize int) Page {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}

	number := ClampPage(page, len(tasks), pageSize)
	offset := (number - 1) * pageSize
	end := min(offset+pageSize, len(tasks))

	items := []models.Task{}
	if offset < end {
		items = tasks[offset:end]
	}
	return Page{
		Items:     items,
		Number:    number,
		PageCount: PageCount(len(tasks), pageSize),
		Total:     len(tasks),
		Offset:    offset,
	}
}
