package protocol

// CommandType tags every outbound client message.
type CommandType string

const (
	CommandStartGame    CommandType = "start_game"
	CommandSubmitAnswer CommandType = "submit_answer"
)

// Command is the outbound wire shape. Answer is only set for submit_answer.
type Command struct {
	Type   CommandType `json:"type"`
	Answer string      `json:"answer,omitempty"`
}

// StartGame is the owner-only command that begins the quiz. The server
// enforces ownership; non-owners sending it are ignored.
func StartGame() Command {
	return Command{Type: CommandStartGame}
}

// SubmitAnswer submits a title guess for the current round. It may be sent
// multiple times per round; the server keeps the latest submission.
func SubmitAnswer(answer string) Command {
	return Command{Type: CommandSubmitAnswer, Answer: answer}
}
