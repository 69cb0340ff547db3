package intent

// Rule binds a label to the substring patterns that activate it. Rule tables
// are plain ordered slices: for intent resolution the order IS the tie-break,
// so none of these may be turned into maps.
type Rule struct {
	Label    string
	Patterns []string
}

// businessCategoryRules map query vocabulary onto business categories.
// Several categories may match one query.
var businessCategoryRules = []Rule{
	{Label: "Infrastructure", Patterns: []string{
		"infrastructure", "infra", "server", "host", "container", "kubernetes",
		"k8s", "node", "pod", "cpu", "memory", "disk",
	}},
	{Label: "Application", Patterns: []string{
		"application", "app ", "service", "api", "endpoint", "request", "frontend", "backend",
	}},
	{Label: "Monitoring", Patterns: []string{
		"monitor", "alert", "health", "uptime", "availability", "sla", "slo",
	}},
	{Label: "Database", Patterns: []string{
		"database", "db ", "sql", "postgres", "mysql", "mongo", "redis",
	}},
	{Label: "Security", Patterns: []string{
		"security", "auth", "login", "access", "permission", "audit", "threat", "vulnerab",
	}},
	{Label: "Network", Patterns: []string{
		"network", "dns", "tcp", "udp", "traffic", "bandwidth", "connection", "firewall",
	}},
	{Label: "Storage", Patterns: []string{
		"storage", "volume", "bucket", "s3", "filesystem", "quota",
	}},
}

// technicalCategoryRules map query vocabulary onto technical categories.
var technicalCategoryRules = []Rule{
	{Label: "Metrics", Patterns: []string{
		"metric", "rate", "gauge", "percentage", "usage", "utilization", "throughput", "count of",
	}},
	{Label: "Logs", Patterns: []string{
		"log", "logging", "stdout", "stderr", "message",
	}},
	{Label: "Events", Patterns: []string{
		"event", "change", "deploy", "incident", "notification",
	}},
	{Label: "Resources", Patterns: []string{
		"resource", "inventory", "asset", "entity",
	}},
	{Label: "Traces", Patterns: []string{
		"trace", "span", "tracing", "distributed",
	}},
}

// fieldConceptRules map query vocabulary onto canonical field concepts, which
// are later intersected with candidate key fields.
var fieldConceptRules = []Rule{
	{Label: "error", Patterns: []string{"error", "exception", "failure", "fault", "crash"}},
	{Label: "duration", Patterns: []string{"duration", "latency", "slow", "response time", "elapsed"}},
	{Label: "cpu", Patterns: []string{"cpu", "processor"}},
	{Label: "memory", Patterns: []string{"memory", "ram", "heap"}},
	{Label: "status", Patterns: []string{"status", "state"}},
	{Label: "timestamp", Patterns: []string{"timestamp", "time range", "when"}},
	{Label: "user", Patterns: []string{"user", "customer", "account"}},
	{Label: "service", Patterns: []string{"service", "component", "microservice"}},
	{Label: "host", Patterns: []string{"host", "hostname", "machine", "instance"}},
}

// intentRules resolve the single dominant intent. First label with any match
// wins; the ordering is deliberate and load-bearing (e.g. a query mentioning
// both performance and errors resolves to performance).
var intentRules = []Rule{
	{Label: TypePerformance, Patterns: []string{
		"performance", "slow", "latency", "response time", "speed", "bottleneck",
	}},
	{Label: TypeErrors, Patterns: []string{
		"error", "exception", "failure", "crash", "fail",
	}},
	{Label: TypeMonitoring, Patterns: []string{
		"monitor", "alert", "watch", "health", "uptime",
	}},
	{Label: TypeAnalysis, Patterns: []string{
		"analyze", "analysis", "trend", "pattern", "compare", "correlat",
	}},
	{Label: TypeTroubleshooting, Patterns: []string{
		"troubleshoot", "debug", "investigate", "diagnose", "root cause", "why",
	}},
	{Label: TypeCapacity, Patterns: []string{
		"capacity", "usage", "utilization", "consumption", "quota",
	}},
}

// interfaceRules map query vocabulary onto preferred query interfaces.
var interfaceRules = []Rule{
	{Label: "log", Patterns: []string{"log"}},
	{Label: "metric", Patterns: []string{"metric", "measurement"}},
	{Label: "span", Patterns: []string{"span", "trace", "tracing"}},
}

// typeRules map query vocabulary onto preferred dataset types.
var typeRules = []Rule{
	{Label: "Event", Patterns: []string{"event", "stream"}},
	{Label: "Resource", Patterns: []string{"resource", "inventory"}},
	{Label: "Interval", Patterns: []string{"interval", "session", "span"}},
	{Label: "Table", Patterns: []string{"table", "lookup"}},
}

// InterfaceType pairs a query interface with a dataset type.
type InterfaceType struct {
	Interface string
	Type      string
}

// intentAugmentations extend interface/type preferences from the resolved
// intent, so "show me slow traces" implicitly prefers metric and span surfaces.
var intentAugmentations = map[string][]InterfaceType{
	TypePerformance:     {{Interface: "metric", Type: "Event"}, {Interface: "span", Type: "Interval"}},
	TypeErrors:          {{Interface: "log", Type: "Event"}, {Interface: "span", Type: "Interval"}},
	TypeMonitoring:      {{Interface: "metric", Type: "Event"}},
	TypeAnalysis:        {{Interface: "log", Type: "Event"}, {Interface: "metric", Type: "Event"}},
	TypeTroubleshooting: {{Interface: "log", Type: "Event"}, {Interface: "span", Type: "Interval"}},
	TypeCapacity:        {{Interface: "metric", Type: "Event"}},
}

// stopWords are dropped from query terms: articles, prepositions, auxiliary
// verbs, and query-filler verbs. Tokens of length <= 2 are dropped regardless.
var stopWords = map[string]struct{}{
	"the": {}, "and": {}, "but": {}, "for": {}, "with": {}, "from": {},
	"about": {}, "into": {}, "over": {}, "under": {}, "between": {},
	"are": {}, "was": {}, "were": {}, "been": {}, "being": {},
	"have": {}, "has": {}, "had": {}, "does": {}, "did": {}, "doing": {},
	"can": {}, "could": {}, "should": {}, "would": {}, "will": {}, "shall": {},
	"this": {}, "that": {}, "these": {}, "those": {},
	"what": {}, "which": {}, "who": {}, "whom": {}, "how": {},
	"all": {}, "any": {}, "each": {}, "some": {},
	"show": {}, "get": {}, "find": {}, "give": {}, "list": {}, "display": {},
	"tell": {}, "need": {}, "want": {}, "see": {}, "look": {}, "fetch": {},
	"please": {}, "you": {}, "your": {}, "our": {}, "their": {},
}
