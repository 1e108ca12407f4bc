package session

var reputationLabels = map[int]string{
	1: "bronze",
	2: "silver",
	3: "gold",
	4: "diamond",
}

// ReputationLabel maps the numeric upstream level to its badge. Unknown or
// missing levels are bronze.
func ReputationLabel(level *int) string {
	if level == nil {
		return "bronze"
	}
	if label, ok := reputationLabels[*level]; ok {
		return label
	}
	return "bronze"
}
