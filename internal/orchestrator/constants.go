package orchestrator

// Workflow step names used in log lines.
const (
	stepDiscoverTags    = "discover_tags"
	stepCollectSections = "collect_sections"
	stepRender          = "render"
	stepWrite           = "write"
)
