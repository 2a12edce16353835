package classifier

// Provenance is where a module comes from. The order of the constants is
// the order of the import groups.
type Provenance int

const (
	Future Provenance = iota
	StandardLibrary
	ThirdParty
	Other
)

func (p Provenance) String() string {
	switch p {
	case Future:
		return "future"
	case StandardLibrary:
		return "stdlib"
	case ThirdParty:
		return "thirdparty"
	case Other:
		return "other"
	default:
		return "unknown"
	}
}

// FutureModule is the pseudo-module holding forward-compatibility features.
const FutureModule = "__future__"
