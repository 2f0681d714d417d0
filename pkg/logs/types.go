package logs

// Group is a named container of log streams. Groups are append-only:
// once stored they are never mutated or deleted.
type Group struct {
	Name              string `json:"logGroupName" yaml:"name"`
	ARN               string `json:"arn,omitempty" yaml:"arn,omitempty"`
	CreationTime      int64  `json:"creationTime,omitempty" yaml:"creationTime,omitempty"`
	StoredBytes       int64  `json:"storedBytes,omitempty" yaml:"storedBytes,omitempty"`
	MetricFilterCount int    `json:"metricFilterCount,omitempty" yaml:"metricFilterCount,omitempty"`
}

// Stream is a sequence of events within a group. The three nullable
// timestamps are nil until event ingestion populates them; all times are
// Unix milliseconds, matching the wire shape of the emulated service.
//
// Stream metadata is mutated only by Store.AppendEvents. In particular
// LastEventTimestamp deliberately trails the newest ingested event by up
// to the store's ingestion delay; see the package documentation.
type Stream struct {
	Name                string `json:"logStreamName" yaml:"name"`
	ARN                 string `json:"arn,omitempty" yaml:"arn,omitempty"`
	CreationTime        int64  `json:"creationTime,omitempty" yaml:"creationTime,omitempty"`
	UploadSequenceToken string `json:"uploadSequenceToken,omitempty" yaml:"uploadSequenceToken,omitempty"`
	StoredBytes         int64  `json:"storedBytes,omitempty" yaml:"storedBytes,omitempty"`
	FirstEventTimestamp *int64 `json:"firstEventTimestamp,omitempty" yaml:"firstEventTimestamp,omitempty"`
	LastEventTimestamp  *int64 `json:"lastEventTimestamp,omitempty" yaml:"lastEventTimestamp,omitempty"`
	LastIngestionTime   *int64 `json:"lastIngestionTime,omitempty" yaml:"lastIngestionTime,omitempty"`
}

// Event is a single log record. Timestamp is event time; IngestionTime
// is when the event was accepted by the pipeline. Events are immutable
// once stored and the store keeps them sorted ascending by Timestamp.
type Event struct {
	Timestamp     int64  `json:"timestamp" yaml:"timestamp"`
	Message       string `json:"message" yaml:"message"`
	IngestionTime int64  `json:"ingestionTime" yaml:"ingestionTime"`
}

// OrderBy values accepted by ListStreams.
const (
	OrderByName          = "LogStreamName"
	OrderByLastEventTime = "LastEventTime"
)

// Default page sizes.
const (
	DefaultListLimit  = 50
	DefaultQueryLimit = 10000
)

// ListGroupsInput parameterizes Store.ListGroups.
type ListGroupsInput struct {
	NextToken string
	Limit     int // 0 means DefaultListLimit
}

// ListGroupsOutput is one page of groups. NextToken is empty on the
// final page.
type ListGroupsOutput struct {
	Groups    []Group `json:"logGroups"`
	NextToken string  `json:"nextToken,omitempty"`
}

// ListStreamsInput parameterizes Store.ListStreams.
type ListStreamsInput struct {
	// OrderBy is OrderByName (default) or OrderByLastEventTime.
	OrderBy string
	// Descending reverses the final ordered sequence.
	Descending bool
	// Prefix filters streams by name prefix before pagination. It is
	// incompatible with OrderByLastEventTime.
	Prefix    string
	NextToken string
	Limit     int // 0 means DefaultListLimit
}

// ListStreamsOutput is one page of stream metadata.
type ListStreamsOutput struct {
	Streams   []Stream `json:"logStreams"`
	NextToken string   `json:"nextToken,omitempty"`
}

// QueryEventsInput parameterizes Store.QueryEvents.
type QueryEventsInput struct {
	// StartTime and EndTime bound event timestamps to
	// startTime <= ts < endTime. Nil means unbounded on that side.
	StartTime *int64
	EndTime   *int64
	// Match, when non-nil, drops events it rejects before pagination.
	// The server layer compiles filter expressions into this form.
	Match func(Event) bool
	// NextToken continues a previous query in either direction.
	NextToken string
	Limit     int // 0 means DefaultQueryLimit
}

// QueryEventsOutput is one window of events plus cursors in both
// directions. Both tokens are always minted, even when the adjacent
// window would be empty.
type QueryEventsOutput struct {
	Events            []Event `json:"events"`
	NextForwardToken  string  `json:"nextForwardToken"`
	NextBackwardToken string  `json:"nextBackwardToken"`
}
