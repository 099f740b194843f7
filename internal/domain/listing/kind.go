package listing

// Kind is the type tag of a listing.
type Kind string

// Kind constants. The first three are help posts, the rest community board items.
const (
	HelpRequest   Kind = "help_request"
	HelpOffer     Kind = "help_offer"
	Sell          Kind = "sell"
	Tip           Kind = "tip"
	Story         Kind = "story"
	ExpertContent Kind = "expert_content"
)

// IsValid checks if the kind is one of the supported values.
func (k Kind) IsValid() bool {
	switch k {
	case HelpRequest, HelpOffer, Sell, Tip, Story, ExpertContent:
		return true
	}
	return false
}

// TranslationKey returns the UI string key for the kind.
// Unknown kinds fall back to the help request key.
func (k Kind) TranslationKey() string {
	switch k {
	case HelpOffer:
		return "helpOffer"
	case Sell:
		return "sell"
	case Tip:
		return "tip"
	case Story:
		return "story"
	case ExpertContent:
		return "expertContent"
	default:
		return "helpRequest"
	}
}

// Urgency is how soon a help post needs attention.
type Urgency string

// Urgency constants.
const (
	Low    Urgency = "low"
	Medium Urgency = "medium"
	High   Urgency = "high"
)

// IsValid checks if the urgency is one of the supported values.
func (u Urgency) IsValid() bool {
	return u == Low || u == Medium || u == High
}

// Status is the lifecycle state of a help post.
type Status string

// Status constants.
const (
	Open   Status = "open"
	Solved Status = "solved"
	Closed Status = "closed"
)

// IsValid checks if the status is one of the supported values.
func (s Status) IsValid() bool {
	return s == Open || s == Solved || s == Closed
}

// AccountType tags listings that represent a user on the map.
type AccountType string

// AccountType constants.
const (
	Personal AccountType = "personal"
	Company  AccountType = "company"
)

// IsValid checks if the account type is one of the supported values.
func (a AccountType) IsValid() bool {
	return a == Personal || a == Company
}
