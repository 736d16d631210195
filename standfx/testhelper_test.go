package standfx_test

import (
	"context"
	"strings"

	"github.com/advdv/awstanding"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ssm"
	"github.com/aws/aws-sdk-go-v2/service/ssm/types"
	"github.com/cockroachdb/errors"
	"go.uber.org/fx"
)

// fakeStore implements awstanding.ParameterStore on top of a map, with single-page path results.
type fakeStore struct {
	params map[string]string
}

func (s *fakeStore) GetParameters(
	_ context.Context, in *ssm.GetParametersInput, _ ...func(*ssm.Options),
) (*ssm.GetParametersOutput, error) {
	out := &ssm.GetParametersOutput{}
	for _, name := range in.Names {
		v, ok := s.params[name]
		if !ok {
			out.InvalidParameters = append(out.InvalidParameters, name)
			continue
		}
		out.Parameters = append(out.Parameters, types.Parameter{Name: aws.String(name), Value: aws.String(v)})
	}
	return out, nil
}

func (s *fakeStore) GetParametersByPath(
	_ context.Context, in *ssm.GetParametersByPathInput, _ ...func(*ssm.Options),
) (*ssm.GetParametersByPathOutput, error) {
	prefix := strings.TrimSuffix(aws.ToString(in.Path), "/") + "/"
	out := &ssm.GetParametersByPathOutput{}
	for name, v := range s.params {
		if strings.HasPrefix(name, prefix) {
			out.Parameters = append(out.Parameters, types.Parameter{Name: aws.String(name), Value: aws.String(v)})
		}
	}
	return out, nil
}

func (s *fakeStore) GetParameter(
	_ context.Context, in *ssm.GetParameterInput, _ ...func(*ssm.Options),
) (*ssm.GetParameterOutput, error) {
	v, ok := s.params[aws.ToString(in.Name)]
	if !ok {
		return nil, &types.ParameterNotFound{}
	}
	return &ssm.GetParameterOutput{Parameter: &types.Parameter{Name: in.Name, Value: aws.String(v)}}, nil
}

// fakeSecrets implements awstanding.SecretReader.
type fakeSecrets map[string]string

func (s fakeSecrets) GetSecretString(_ context.Context, id string) (string, error) {
	v, ok := s[id]
	if !ok {
		return "", errors.Errorf("secret %q not found", id)
	}
	return v, nil
}

// replaceDeps decorates the graph so no AWS calls are made and nothing leaks into the process
// environment.
func replaceDeps(store awstanding.ParameterStore, secrets awstanding.SecretReader, env awstanding.Environ) fx.Option {
	return fx.Options(
		fx.Decorate(func(awstanding.ParameterStore) awstanding.ParameterStore { return store }),
		fx.Decorate(func(awstanding.SecretReader) awstanding.SecretReader { return secrets }),
		fx.Decorate(func(awstanding.Environ) awstanding.Environ { return env }),
	)
}
