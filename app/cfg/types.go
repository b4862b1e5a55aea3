package cfg

type Cfg struct {
	// Feed configuration
	FeedURL         string
	SourceFile      string
	RefreshInterval int

	// Application configuration
	Port        string
	WorkerCount int

	// Application metadata
	UserAgent string
	Timezone  string
	Debug     bool
	Version   string
}
