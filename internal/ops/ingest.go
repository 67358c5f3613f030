package ops

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"

	"golang.org/x/sync/errgroup"

	"cardbox/internal/codec"
	"cardbox/internal/deck"
	"cardbox/internal/errors"
	"cardbox/internal/store"
)

// Source is one named provider of raw document text. Content is called at
// most once, from the goroutine ingesting this source.
type Source struct {
	Name    string
	Content func(ctx context.Context) (string, error)
}

// FileSource creates a Source reading from a local file. The separator
// title is the file's base name.
func FileSource(path string) Source {
	name := path
	if idx := strings.LastIndexAny(path, `/\`); idx >= 0 {
		name = path[idx+1:]
	}
	return Source{
		Name: name,
		Content: func(_ context.Context) (string, error) {
			data, err := os.ReadFile(path)
			if err != nil {
				if os.IsNotExist(err) {
					return "", errors.NewFileNotFound(path)
				}
				return "", errors.NewFetchFailed(path, err)
			}
			return string(data), nil
		},
	}
}

// IngestInput contains parameters for the Ingest operation.
type IngestInput struct {
	Sources []Source
}

// IngestOutput contains the result of the Ingest operation.
type IngestOutput struct {
	Sources int           `json:"sources"`
	Cards   int           `json:"cards"`
	Errors  []IngestError `json:"errors"`
}

// IngestError reports one failed source. Other sources are unaffected.
type IngestError struct {
	Source  string `json:"source"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Ingest loads every source independently and concurrently. Each source
// that completes appends, in one atomic store operation, a separator named
// after the source followed by one card per parsed row. Completion order is
// unconstrained: the deck interleaves whole source groups in the order their
// loads finish, never rows from different sources. A failed source appends
// nothing and is reported in the output; an empty source still appends its
// separator.
func Ingest(ctx context.Context, st *store.Store, input IngestInput) (*IngestOutput, error) {
	if len(input.Sources) == 0 {
		return nil, errors.NewInvalidRequest("at least one source is required")
	}

	type result struct {
		cards int
		err   error
	}
	results := make([]result, len(input.Sources))

	var g errgroup.Group
	for i, src := range input.Sources {
		g.Go(func() error {
			text, err := src.Content(ctx)
			if err != nil {
				results[i] = result{err: err}
				return nil
			}

			pairs := codec.ParseDocument(text)
			entries := make([]deck.Entry, 0, len(pairs)+1)
			entries = append(entries, deck.NewSeparator(src.Name))
			for _, p := range pairs {
				entries = append(entries, deck.NewCard(p.Prompt, p.Response))
			}

			st.Append(entries...)
			results[i] = result{cards: len(pairs)}
			return nil
		})
	}
	// Goroutines never return an error; failures are per-source results.
	_ = g.Wait()

	out := &IngestOutput{Errors: []IngestError{}}
	for i, r := range results {
		if r.err != nil {
			out.Errors = append(out.Errors, toIngestError(input.Sources[i].Name, r.err))
			continue
		}
		out.Sources++
		out.Cards += r.cards
	}
	return out, nil
}

// IngestURLInput contains parameters for the IngestURL operation.
type IngestURLInput struct {
	URL string
}

// IngestURL fetches one document over HTTP GET and appends it like a file
// source. On a transport error or non-success status the deck is left
// unchanged and the failure is returned. The separator title is the URL's
// final path segment, or the whole URL when there is none.
func IngestURL(ctx context.Context, st *store.Store, input IngestURLInput) (*IngestOutput, error) {
	rawURL := strings.TrimSpace(input.URL)
	if rawURL == "" {
		return nil, errors.NewInvalidRequest("url is required")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, errors.NewInvalidRequest("invalid url: " + err.Error())
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, errors.NewFetchFailed(rawURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, errors.NewFetchFailed(rawURL, nil)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.NewFetchFailed(rawURL, err)
	}

	source := Source{
		Name: urlTitle(rawURL),
		Content: func(context.Context) (string, error) {
			return string(body), nil
		},
	}
	return Ingest(ctx, st, IngestInput{Sources: []Source{source}})
}

// urlTitle derives the separator title from a URL: the final path segment,
// or the whole URL if the path has none.
func urlTitle(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return rawURL
	}
	path := strings.TrimSuffix(u.Path, "/")
	if idx := strings.LastIndex(path, "/"); idx >= 0 && idx+1 < len(path) {
		return path[idx+1:]
	}
	return rawURL
}

// toIngestError converts a source failure into an IngestError.
func toIngestError(source string, err error) IngestError {
	if boxErr, ok := err.(*errors.BoxError); ok {
		return IngestError{
			Source:  source,
			Code:    string(boxErr.Code),
			Message: boxErr.Message,
		}
	}
	return IngestError{
		Source:  source,
		Code:    string(errors.ErrInternal),
		Message: err.Error(),
	}
}
