package errors

// Stable error codes used by the reactive engine and scheduler.
const (
	CodeWatcherGetter     = "R001"
	CodeWatcherCallback   = "R002"
	CodeInfiniteUpdate    = "R003"
	CodeRootStateMutation = "R004"
	CodeInvalidExpression = "R005"
)

// template is the registered shape of a known error code.
type template struct {
	Category   Category
	Message    string
	Detail     string
	Suggestion string
}

// registry maps error codes to their templates.
var registry = map[string]template{
	CodeWatcherGetter: {
		Category: CategoryReactivity,
		Message:  "watcher getter failed",
		Detail:   "A user watch expression panicked while evaluating.",
		Suggestion: "Guard the getter against missing keys; a failing getter " +
			"yields nil for this evaluation and the watcher stays subscribed.",
	},
	CodeWatcherCallback: {
		Category: CategoryReactivity,
		Message:  "watcher callback failed",
		Detail:   "A user watch callback panicked after a value change.",
		Suggestion: "Callbacks run outside the evaluation protocol; the change " +
			"was applied and other watchers are unaffected.",
	},
	CodeInfiniteUpdate: {
		Category: CategoryScheduler,
		Message:  "possible infinite update loop",
		Detail: "The same watcher was re-queued more than the allowed number " +
			"of times within one flush, usually because its callback mutates " +
			"state the watcher itself depends on.",
		Suggestion: "Break the write-read cycle, or mark the write untracked.",
	},
	CodeRootStateMutation: {
		Category: CategoryUsage,
		Message:  "avoid adding or deleting reactive properties on root state",
		Detail: "Root state containers must declare all their keys up front; " +
			"reshaping them after binding is not observable.",
		Suggestion: "Declare the key in the initial state, or nest it under a " +
			"non-root container and use Set/Del there.",
	},
	CodeInvalidExpression: {
		Category:   CategoryUsage,
		Message:    "invalid watcher expression",
		Detail:     "Watcher expressions are getter funcs or dotted paths of word characters.",
		Suggestion: "For complex expressions, pass a getter func instead of a path.",
	},
}
