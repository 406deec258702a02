package cli

import "context"

// AI sends a message to the nutrition assistant conversation.
func (a *App) AI(ctx context.Context, text string) error {
	rctx, cancel := a.requestContext(ctx)
	defer cancel()

	reply, err := a.session.Assistant.Send(rctx, text)
	if reply.Text != "" {
		a.printMessage(reply)
	}
	return a.check(ctx, err)
}

// Ask asks a one-off question. Neither question nor answer is saved.
func (a *App) Ask(ctx context.Context, question string) error {
	rctx, cancel := a.requestContext(ctx)
	defer cancel()

	answer, err := a.session.Assistant.Ask(rctx, question)
	if err != nil {
		return a.check(ctx, err)
	}
	a.println(answer)
	return nil
}

func (a *App) AIChat(ctx context.Context) error {
	a.printTranscript(a.session.Assistant.Transcript())
	return nil
}

func (a *App) AIReset(ctx context.Context) error {
	a.printTranscript(a.session.Assistant.Reset(ctx))
	return nil
}
