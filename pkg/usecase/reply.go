package usecase

import "github.com/wanderstone-dev/wanderstone/pkg/domain/types"

// Reply is one outbound chat message, already localized. The chat
// controller renders replies into the platform's message format; the
// usecases stay platform-independent.
type Reply struct {
	Text string

	// Image attaches a rendered or stored image (crop, journey map)
	Image     []byte
	ImageName string
	ImageText string

	// Buttons renders an action row; pressing one delivers the signal
	// (plus its value) back through HandleSignal
	Buttons []Button

	// LinkURL renders a link button (interactive map)
	LinkURL   string
	LinkLabel string
}

// Button is one interactive choice
type Button struct {
	Label  string
	Signal types.Signal
	Value  string
}

func textReply(text string) Reply {
	return Reply{Text: text}
}
