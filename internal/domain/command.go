package domain

type CommandType string

const (
	CommandOptimize CommandType = "optimize"
	CommandImage    CommandType = "image"
	CommandVideo    CommandType = "video"
	CommandHistory  CommandType = "history"
	CommandReset    CommandType = "reset"
	CommandLang     CommandType = "lang"
	CommandHelp     CommandType = "help"
	CommandUnknown  CommandType = "unknown"
)

func (c CommandType) String() string {
	return string(c)
}

func (c CommandType) IsValid() bool {
	switch c {
	case CommandOptimize, CommandImage, CommandVideo, CommandHistory,
		CommandReset, CommandLang, CommandHelp:
		return true
	default:
		return false
	}
}
