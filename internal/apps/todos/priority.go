package todos

// Weighted priority: importance counts for 60% of the score, urgency for
// 40%. Both inputs live in [1,4], so the score lands in [1.0, 4.0]. The
// score is a sort key only and is never stored.
const (
	importanceWeight = 0.6
	urgencyWeight    = 0.4
)

// orderByPriority must compute the same value as Score; it is inlined into
// the list query so the database does the sorting.
const orderByPriority = "importance * 0.6 + urgency * 0.4 DESC, created_at ASC"

// Score returns the derived priority for a todo.
func Score(importance, urgency int) float64 {
	return float64(importance)*importanceWeight + float64(urgency)*urgencyWeight
}

var levelLabels = map[int]string{
	1: "Low",
	2: "Medium",
	3: "High",
	4: "Critical",
}

// Label maps a level in [1,4] to its display name. Anything else falls back
// to Medium, matching the icon fallback.
func Label(level int) string {
	if label, ok := levelLabels[level]; ok {
		return label
	}
	return levelLabels[2]
}

// Inline SVG markup per level, shipped so clients render consistent badges
// without their own asset set.
var levelIcons = map[int]string{
	1: `<svg width="16" height="16" viewBox="0 0 16 16" xmlns="http://www.w3.org/2000/svg"><circle cx="8" cy="8" r="6" fill="#4CAF50"/></svg>`,
	2: `<svg width="16" height="16" viewBox="0 0 16 16" xmlns="http://www.w3.org/2000/svg"><polygon points="8,2 14,14 2,14" fill="#FF7811"/></svg>`,
	3: `<svg width="16" height="16" viewBox="0 0 16 16" xmlns="http://www.w3.org/2000/svg"><rect x="2" y="2" width="12" height="12" fill="#F44336"/></svg>`,
	4: `<svg width="16" height="16" viewBox="0 0 16 16" xmlns="http://www.w3.org/2000/svg"><path d="M8 1L15 8L8 15L1 8Z" fill="#D32F2F"/></svg>`,
}

// Icon returns the SVG badge for a level, falling back to the Medium icon
// for out-of-range values.
func Icon(level int) string {
	if icon, ok := levelIcons[level]; ok {
		return icon
	}
	return levelIcons[2]
}
