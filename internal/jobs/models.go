package jobs

// StatsRefreshArgs refetches the ranking snapshot for one event.
type StatsRefreshArgs struct {
	EventKey string `json:"event_key"`
}

// Kind returns the job type identifier for River.
func (StatsRefreshArgs) Kind() string { return "stats_refresh" }

// StatsSweepArgs fans out a refresh job for every stored snapshot.
type StatsSweepArgs struct{}

// Kind returns the job type identifier for River.
func (StatsSweepArgs) Kind() string { return "stats_sweep" }
