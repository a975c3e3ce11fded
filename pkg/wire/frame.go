package wire

// Tag identifies the payload shape of a Frame on the wire. Values 1-8 match
// the numeric encoding of the original protocol and must not be renumbered;
// 9-11 extend the table.
type Tag byte

const (
	TagAbort                Tag = 1
	TagSetStatusOk          Tag = 2
	TagSetStatusError       Tag = 3
	TagGetStatuses          Tag = 4
	TagRefreshClientByName  Tag = 5
	TagSetName              Tag = 6
	TagStatuses             Tag = 7
	TagRefresh              Tag = 8
	TagRefreshAllClients    Tag = 9
	TagListClients          Tag = 10
	TagClients              Tag = 11
)

var tagNames = map[Tag]string{
	TagAbort:               "Abort",
	TagSetStatusOk:         "SetStatusOk",
	TagSetStatusError:      "SetStatusError",
	TagGetStatuses:         "GetStatuses",
	TagRefreshClientByName: "RefreshClientByName",
	TagSetName:             "SetName",
	TagStatuses:            "Statuses",
	TagRefresh:             "Refresh",
	TagRefreshAllClients:   "RefreshAllClients",
	TagListClients:         "ListClients",
	TagClients:             "Clients",
}

// String renders the tag's frame name, or "Unknown" for an unrecognized tag.
func (t Tag) String() string {
	if name, ok := tagNames[t]; ok {
		return name
	}
	return "Unknown"
}

// Frame is a single decoded protocol message. Only the fields relevant to
// Tag are populated; which ones those are is documented per tag below.
type Frame struct {
	Tag Tag

	// Message holds the payload for SetStatusError and RefreshClientByName
	// and SetName (client->server string-payload frames).
	Message string

	// IncludeNames holds the payload for GetStatuses.
	IncludeNames bool

	// Names holds the payload for Statuses and Clients (server->client
	// string-vector frames).
	Names []string
}

func Abort() Frame               { return Frame{Tag: TagAbort} }
func SetStatusOk() Frame         { return Frame{Tag: TagSetStatusOk} }
func SetStatusError(msg string) Frame {
	return Frame{Tag: TagSetStatusError, Message: msg}
}
func GetStatuses(includeNames bool) Frame {
	return Frame{Tag: TagGetStatuses, IncludeNames: includeNames}
}
func RefreshClientByName(name string) Frame {
	return Frame{Tag: TagRefreshClientByName, Message: name}
}
func SetName(name string) Frame { return Frame{Tag: TagSetName, Message: name} }
func Statuses(names []string) Frame {
	return Frame{Tag: TagStatuses, Names: names}
}
func Refresh() Frame             { return Frame{Tag: TagRefresh} }
func RefreshAllClients() Frame   { return Frame{Tag: TagRefreshAllClients} }
func ListClients() Frame         { return Frame{Tag: TagListClients} }
func Clients(names []string) Frame {
	return Frame{Tag: TagClients, Names: names}
}
