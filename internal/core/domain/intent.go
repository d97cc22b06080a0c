package domain

import "fmt"

// IntentFlag controls how the platform launches an activity.
type IntentFlag int

const (
	// FlagActivityExcludeFromRecents keeps the launched activity out of the
	// task switcher, so the calling application shows up there instead.
	FlagActivityExcludeFromRecents IntentFlag = 0x00800000
)

// ActionView asks the platform to display the data URL of the intent.
const ActionView = "android.intent.action.VIEW"

// Intent is a launch request handed to the platform.
type Intent struct {
	Action string
	Data   string
	Flags  IntentFlag
	Extras map[string][]byte
}

func NewIntent(action string) *Intent {
	return &Intent{Action: action}
}

func (i *Intent) AddFlags(flags IntentFlag) *Intent {
	i.Flags |= flags
	return i
}

func (i *Intent) HasFlag(flag IntentFlag) bool {
	return i.Flags&flag == flag
}

func (i *Intent) PutExtra(key string, value []byte) *Intent {
	if i.Extras == nil {
		i.Extras = make(map[string][]byte)
	}
	i.Extras[key] = value
	return i
}

// Extra returns the value stored under key and whether it is present.
func (i *Intent) Extra(key string) ([]byte, bool) {
	if i == nil || i.Extras == nil {
		return nil, false
	}
	v, ok := i.Extras[key]
	return v, ok
}

// ResultCode is the outcome reported by a launched activity. Values match the
// platform constants.
type ResultCode int

const (
	ResultCanceled ResultCode = 0
	ResultOK       ResultCode = -1
)

func (c ResultCode) String() string {
	switch c {
	case ResultCanceled:
		return "CANCELED"
	case ResultOK:
		return "OK"
	default:
		return fmt.Sprintf("ResultCode(%d)", int(c))
	}
}

// ActivityResult is delivered to the caller once a launched activity finishes.
// RequestCode echoes the code passed to StartActivityForResult.
type ActivityResult struct {
	RequestCode int
	ResultCode  ResultCode
	Data        *Intent
}
