package handler

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ec2"
	"github.com/aws/smithy-go"

	"github.com/soliscottude/ec2-self-healing-demo/internal/config"
	domain "github.com/soliscottude/ec2-self-healing-demo/internal/domain/alarm"
	"github.com/soliscottude/ec2-self-healing-demo/internal/logger"
	repo "github.com/soliscottude/ec2-self-healing-demo/internal/repository/auditlog"
)

// InstanceStatusAPI is the subset of the EC2 client used for status lookups.
// *ec2.Client satisfies it.
type InstanceStatusAPI interface {
	DescribeInstanceStatus(ctx context.Context, params *ec2.DescribeInstanceStatusInput, optFns ...func(*ec2.Options)) (*ec2.DescribeInstanceStatusOutput, error)
}

// InstanceControlAPI is the subset of the EC2 client used for reboots.
// *ec2.Client satisfies it.
type InstanceControlAPI interface {
	RebootInstances(ctx context.Context, params *ec2.RebootInstancesInput, optFns ...func(*ec2.Options)) (*ec2.RebootInstancesOutput, error)
}

// Service runs the linear parse, decide, act, log flow for one notification.
// It holds only read-only configuration and clients, so concurrent
// invocations are independent.
type Service struct {
	// cfg is the immutable process configuration.
	cfg *config.Config
	// status performs the instance status lookup.
	status InstanceStatusAPI
	// control issues the reboot command.
	control InstanceControlAPI
	// logs persists one audit entry per invocation.
	logs repo.Repository
}

// NewService wires the handler's collaborators together.
func NewService(cfg *config.Config, status InstanceStatusAPI, control InstanceControlAPI, logs repo.Repository) *Service {
	return &Service{
		cfg:     cfg,
		status:  status,
		control: control,
		logs:    logs,
	}
}

// Response is what the invoking platform sees. Only 200 and 400 are ever
// produced; all richer detail lives in the persisted audit record.
type Response struct {
	StatusCode int    `json:"statusCode"`
	Body       string `json:"body"`
}

// resultBody is the JSON payload of a successful response.
type resultBody struct {
	Message     string `json:"message"`
	InstanceID  string `json:"instance_id"`
	ActionTaken string `json:"action_taken"`
}

const (
	// badEnvelopeBody is the response body for malformed invocation payloads.
	badEnvelopeBody = "Unexpected event format"

	// runningState is the only instance state a reboot is issued from.
	runningState = "running"
	// unknownState stands in when the status lookup returns no data.
	unknownState = "unknown"
)

// Handle processes one SNS-delivered alarm notification. The raw payload is
// kept as received so a malformed envelope can be persisted for debugging.
// An error return means the audit write itself failed; every other failure
// is absorbed into the response and the record.
func (s *Service) Handle(ctx context.Context, raw json.RawMessage) (Response, error) {
	ctx = logger.WithName(ctx, "alarm-handler")

	body, ok := extractMessage(raw)
	if !ok {
		logger.Warn(ctx, "Envelope is missing SNS records, storing raw event")

		errRecord := domain.NewErrorRecord(badEnvelopeBody, raw)
		if _, err := s.logs.Store(ctx, errRecord, repo.ErrorPrefix); err != nil {
			return Response{}, fmt.Errorf("store envelope error record: %w", err)
		}

		return Response{StatusCode: http.StatusBadRequest, Body: badEnvelopeBody}, nil
	}

	msg := domain.Parse(body)

	var (
		region     = msg.ResolveRegion(s.cfg.Region)
		instanceID = msg.InstanceID(s.cfg.InstanceID)
		action     = s.decide(ctx, msg.NewStateValue, instanceID)
	)

	record := domain.NewRecord(msg, instanceID, region, action)

	key, err := s.logs.Store(ctx, record, repo.LogPrefix)
	if err != nil {
		return Response{}, fmt.Errorf("store audit record: %w", err)
	}

	logger.InfoKV(ctx, "Alarm processed",
		"alarm_name", record.AlarmName,
		"new_state", record.NewState,
		"instance_id", instanceID,
		"action_taken", action.String(),
		"log_key", key)

	payload, err := json.Marshal(resultBody{
		Message:     "alarm processed",
		InstanceID:  instanceID,
		ActionTaken: action.String(),
	})
	if err != nil {
		return Response{}, fmt.Errorf("encode response: %w", err)
	}

	return Response{StatusCode: http.StatusOK, Body: string(payload)}, nil
}

// decide maps the alarm state and resolved instance to an action outcome.
// EC2 failures are converted to ERROR_* outcomes and never returned: a
// propagated error would make the platform re-invoke a handler whose reboot
// may already have been issued.
func (s *Service) decide(ctx context.Context, newState, instanceID string) domain.Outcome {
	if newState != domain.StateAlarm || instanceID == config.UnknownInstanceID {
		return domain.OutcomeNone
	}

	observed, err := s.observedState(ctx, instanceID)
	if err != nil {
		logger.Errorf(ctx, "Instance status lookup failed: %v", err)

		return domain.Failure(errorCategory(err))
	}

	if observed != runningState {
		logger.InfoKV(ctx, "Skipping reboot", "instance_id", instanceID, "instance_state", observed)

		return domain.Skipped(observed)
	}

	_, err = s.control.RebootInstances(ctx, &ec2.RebootInstancesInput{
		InstanceIds: []string{instanceID},
	})
	if err != nil {
		logger.Errorf(ctx, "Reboot request failed: %v", err)

		return domain.Failure(errorCategory(err))
	}

	logger.InfoKV(ctx, "Reboot requested", "instance_id", instanceID)

	return domain.RebootRequested(observed)
}

// observedState queries EC2 for the instance's run state, returning
// "unknown" when the API reports no status data.
func (s *Service) observedState(ctx context.Context, instanceID string) (string, error) {
	output, err := s.status.DescribeInstanceStatus(ctx, &ec2.DescribeInstanceStatusInput{
		InstanceIds:         []string{instanceID},
		IncludeAllInstances: aws.Bool(true),
	})
	if err != nil {
		return "", err
	}

	if len(output.InstanceStatuses) == 0 || output.InstanceStatuses[0].InstanceState == nil {
		return unknownState, nil
	}

	return string(output.InstanceStatuses[0].InstanceState.Name), nil
}

// extractMessage pulls the first record's SNS message out of the envelope.
// A missing record list or an empty message string counts as a bad envelope.
func extractMessage(raw json.RawMessage) (string, bool) {
	var envelope events.SNSEvent
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return "", false
	}

	if len(envelope.Records) == 0 {
		return "", false
	}

	message := envelope.Records[0].SNS.Message
	if message == "" {
		return "", false
	}

	return message, true
}

// errorCategory names an EC2 failure for the ERROR_* outcome: the AWS API
// error code when present, otherwise the bare Go error type name.
func errorCategory(err error) string {
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) && apiErr.ErrorCode() != "" {
		return apiErr.ErrorCode()
	}

	name := fmt.Sprintf("%T", err)
	name = strings.TrimPrefix(name, "*")

	if i := strings.LastIndex(name, "."); i >= 0 {
		name = name[i+1:]
	}

	return name
}
