package client

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/lambda"
	"github.com/aws/aws-sdk-go-v2/service/lambda/types"

	"github.com/prudhivi99/Distributed-Systems/ecommerce-go/internal/processor"
)

// ProcessorClient runs the order workflow by invoking the deployed function.
type ProcessorClient struct {
	lambda   *lambda.Client
	function string
}

func NewProcessorClient(awsCfg aws.Config, endpoint, function string) *ProcessorClient {
	client := lambda.NewFromConfig(awsCfg, func(o *lambda.Options) {
		if endpoint != "" {
			o.BaseEndpoint = aws.String(endpoint)
		}
	})
	return &ProcessorClient{lambda: client, function: function}
}

// Process invokes the function synchronously and returns its response.
func (c *ProcessorClient) Process(ctx context.Context, orderID string) (processor.Response, error) {
	payload, err := json.Marshal(processor.Event{OrderID: orderID})
	if err != nil {
		return processor.Response{}, fmt.Errorf("failed to encode event: %w", err)
	}

	out, err := c.lambda.Invoke(ctx, &lambda.InvokeInput{
		FunctionName:   aws.String(c.function),
		InvocationType: types.InvocationTypeRequestResponse,
		Payload:        payload,
	})
	if err != nil {
		return processor.Response{}, fmt.Errorf("failed to invoke %s: %w", c.function, err)
	}

	if out.FunctionError != nil {
		return processor.Response{}, fmt.Errorf("function %s failed (%s): %s", c.function, *out.FunctionError, out.Payload)
	}

	var resp processor.Response
	if err := json.Unmarshal(out.Payload, &resp); err != nil {
		return processor.Response{}, fmt.Errorf("failed to decode response: %w", err)
	}

	return resp, nil
}
