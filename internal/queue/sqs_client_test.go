package queue

import (
	"context"
	"errors"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
)

type fakeSQS struct {
	input *sqs.SendMessageInput
	err   error
}

func (f *fakeSQS) SendMessage(_ context.Context, in *sqs.SendMessageInput, _ ...func(*sqs.Options)) (*sqs.SendMessageOutput, error) {
	f.input = in
	if f.err != nil {
		return nil, f.err
	}
	return &sqs.SendMessageOutput{MessageId: aws.String("m-1")}, nil
}

func TestSQSClientSend(t *testing.T) {
	fake := &fakeSQS{}
	c := &SQSClient{client: fake, queueURL: "https://sqs.eu-west-3.amazonaws.com/123/provisioning"}

	if err := c.Send(context.Background(), Message{CompanyID: "COMP_ACME_ABC12345"}); err != nil {
		t.Fatalf("Send: %v", err)
	}
	if aws.ToString(fake.input.QueueUrl) != c.queueURL {
		t.Fatalf("unexpected queue url %q", aws.ToString(fake.input.QueueUrl))
	}
	attr := fake.input.MessageAttributes["companyId"]
	if aws.ToString(attr.StringValue) != "COMP_ACME_ABC12345" {
		t.Fatalf("missing companyId attribute")
	}
	decoded, err := DecodeMessage([]byte(aws.ToString(fake.input.MessageBody)))
	if err != nil || decoded.CompanyID != "COMP_ACME_ABC12345" {
		t.Fatalf("unexpected body %q (%v)", aws.ToString(fake.input.MessageBody), err)
	}
}

func TestSQSClientSendError(t *testing.T) {
	boom := errors.New("throttled")
	c := &SQSClient{client: &fakeSQS{err: boom}, queueURL: "q"}

	if err := c.Send(context.Background(), Message{CompanyID: "COMP_X_AAAAAAAA"}); !errors.Is(err, boom) {
		t.Fatalf("expected wrapped error, got %v", err)
	}
}

func TestNewSQSClientRequiresURL(t *testing.T) {
	if _, err := NewSQSClient(context.Background(), "eu-west-3", " "); err == nil {
		t.Fatalf("expected error for empty queue url")
	}
}
