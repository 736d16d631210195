package awstanding_test

import (
	"context"
	"slices"
	"strconv"
	"strings"

	"github.com/advdv/awstanding"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ssm"
	"github.com/aws/aws-sdk-go-v2/service/ssm/types"
	"github.com/cockroachdb/errors"
)

// page is one canned GetParametersByPath response.
type page map[string]string

// mockStore implements awstanding.ParameterStore for testing.
type mockStore struct {
	params map[string]string
	pages  map[string][]page
	err    error

	getParametersCalls  [][]string
	getByPathCalls      []ssm.GetParametersByPathInput
	getParameterCalls   int
	decryptionRequested []bool
}

var _ awstanding.ParameterStore = &mockStore{}

func newMockStore(params map[string]string) *mockStore {
	return &mockStore{params: params, pages: map[string][]page{}}
}

func (m *mockStore) GetParameters(
	_ context.Context, in *ssm.GetParametersInput, _ ...func(*ssm.Options),
) (*ssm.GetParametersOutput, error) {
	m.getParametersCalls = append(m.getParametersCalls, slices.Clone(in.Names))
	m.decryptionRequested = append(m.decryptionRequested, aws.ToBool(in.WithDecryption))
	if m.err != nil {
		return nil, m.err
	}

	out := &ssm.GetParametersOutput{}
	for _, name := range in.Names {
		base, selector := name, ""
		if i := strings.LastIndex(name, ":"); strings.HasPrefix(name, "/") && i > 0 {
			base, selector = name[:i], name[i:]
		}

		value, ok := m.params[base]
		if !ok {
			out.InvalidParameters = append(out.InvalidParameters, name)
			continue
		}

		p := types.Parameter{Name: aws.String(base), Value: aws.String(value)}
		if selector != "" {
			p.Selector = aws.String(selector)
		}
		out.Parameters = append(out.Parameters, p)
	}
	return out, nil
}

func (m *mockStore) GetParametersByPath(
	_ context.Context, in *ssm.GetParametersByPathInput, _ ...func(*ssm.Options),
) (*ssm.GetParametersByPathOutput, error) {
	m.getByPathCalls = append(m.getByPathCalls, *in)
	m.decryptionRequested = append(m.decryptionRequested, aws.ToBool(in.WithDecryption))
	if m.err != nil {
		return nil, m.err
	}

	path := aws.ToString(in.Path)
	pages, ok := m.pages[path]
	if !ok {
		pages = []page{m.below(path)}
	}

	idx := 0
	if tok := aws.ToString(in.NextToken); tok != "" {
		var err error
		if idx, err = strconv.Atoi(strings.TrimPrefix(tok, "page-")); err != nil {
			return nil, errors.Newf("bad token %q", tok)
		}
	}

	out := &ssm.GetParametersByPathOutput{}
	names := make([]string, 0, len(pages[idx]))
	for name := range pages[idx] {
		names = append(names, name)
	}
	slices.Sort(names)
	for _, name := range names {
		out.Parameters = append(out.Parameters, types.Parameter{
			Name:  aws.String(name),
			Value: aws.String(pages[idx][name]),
		})
	}
	if idx+1 < len(pages) {
		out.NextToken = aws.String("page-" + strconv.Itoa(idx+1))
	}
	return out, nil
}

func (m *mockStore) GetParameter(
	_ context.Context, in *ssm.GetParameterInput, _ ...func(*ssm.Options),
) (*ssm.GetParameterOutput, error) {
	m.getParameterCalls++
	m.decryptionRequested = append(m.decryptionRequested, aws.ToBool(in.WithDecryption))
	if m.err != nil {
		return nil, m.err
	}

	value, ok := m.params[aws.ToString(in.Name)]
	if !ok {
		return nil, &types.ParameterNotFound{Message: aws.String("parameter not found")}
	}
	return &ssm.GetParameterOutput{
		Parameter: &types.Parameter{Name: in.Name, Value: aws.String(value)},
	}, nil
}

// below returns the parameters recursively below path.
func (m *mockStore) below(path string) page {
	prefix := strings.TrimSuffix(path, "/") + "/"
	res := page{}
	for name, value := range m.params {
		if strings.HasPrefix(name, prefix) {
			res[name] = value
		}
	}
	return res
}

// mockSecretReader implements awstanding.SecretReader for testing.
type mockSecretReader struct {
	secrets map[string]string
	err     error
}

func (m *mockSecretReader) GetSecretString(_ context.Context, secretID string) (string, error) {
	if m.err != nil {
		return "", m.err
	}
	secret, ok := m.secrets[secretID]
	if !ok {
		return "", errors.Errorf("secret %q not found", secretID)
	}
	return secret, nil
}

// failingEnviron refuses to set the given key.
type failingEnviron struct {
	awstanding.MapEnviron
	reject string
}

func (e failingEnviron) Setenv(key, value string) error {
	if key == e.reject {
		return errors.Newf("cannot set %s", key)
	}
	return e.MapEnviron.Setenv(key, value)
}
