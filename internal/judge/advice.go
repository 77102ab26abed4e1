package judge

import (
	"context"
	"fmt"
	"io"

	"github.com/pkg/errors"

	"github.com/agiantii/bcoj/internal/api"
)

const advicePromptTemplate = `My submission failed to compile.

Code:
%s

Compiler output:
%s

Explain the error and how to fix it.`

// StreamCompileAdvice asks the assistant for one-shot advice on a failed
// compilation, embedding the submitted code and the compiler output in the
// prompt. Each chunk is surfaced through onChunk as it arrives.
func (p *Poller) StreamCompileAdvice(ctx context.Context, code string, submission *api.Submission, onChunk func(string)) error {
	prompt := fmt.Sprintf(advicePromptTemplate, code, submission.FailMsg)
	stream, err := p.client.StreamChatSimple(ctx, prompt)
	if err != nil {
		return errors.Wrap(err, "opening advice stream")
	}
	defer stream.Close()

	for {
		chunk, err := stream.Recv()
		if chunk != "" && onChunk != nil {
			onChunk(chunk)
		}
		if err == io.EOF {
			return nil
		}
		if errors.Is(err, context.Canceled) {
			return nil
		}
		if err != nil {
			return errors.Wrap(err, "receiving advice chunk")
		}
	}
}
