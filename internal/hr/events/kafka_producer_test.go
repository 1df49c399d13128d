package events

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/gartstein/hr/internal/hr/models"
	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest"
	"go.uber.org/zap/zaptest/observer"
)

// MockKafkaWriter implements KafkaWriter for testing
type MockKafkaWriter struct {
	mock.Mock
}

func (m *MockKafkaWriter) WriteMessages(ctx context.Context, msgs ...kafka.Message) error {
	args := m.Called(ctx, msgs)
	return args.Error(0)
}

func (m *MockKafkaWriter) Close() error {
	args := m.Called()
	return args.Error(0)
}

func mustMarshal(t *testing.T, v any) []byte {
	t.Helper()
	data, err := json.Marshal(v)
	require.NoError(t, err)
	return data
}

func TestEventConstructors(t *testing.T) {
	employee := &models.Employee{ID: 42, Name: "Victor"}
	ev := EmployeeEvent(EmployeeCreated, employee)
	assert.Equal(t, EmployeeCreated, ev.Type)
	assert.Equal(t, "employee-42", ev.Key)
	assert.Same(t, employee, ev.Employee)
	assert.Nil(t, ev.Company)

	company := &models.Company{ID: uuid.New()}
	ev = CompanyEvent(CompanyDeleted, company)
	assert.Equal(t, CompanyDeleted, ev.Type)
	assert.Equal(t, "company-"+company.ID.String(), ev.Key)
	assert.Same(t, company, ev.Company)
	assert.Nil(t, ev.Employee)
}

func TestNewProducerInternal(t *testing.T) {
	mockWriter := new(MockKafkaWriter)
	producer := newProducer(mockWriter, zaptest.NewLogger(t))

	assert.NotNil(t, producer.writer)
	assert.NotNil(t, producer.events)
	assert.NotNil(t, producer.closeChan)
	assert.Equal(t, queueSize, cap(producer.events))
	assert.Equal(t, "kafka_producer", producer.logger.Check(zap.InfoLevel, "").LoggerName)
}

func TestProducer_Produce(t *testing.T) {
	t.Run("successful produce", func(t *testing.T) {
		producer := newProducer(new(MockKafkaWriter), zaptest.NewLogger(t))
		employee := &models.Employee{ID: 1}

		producer.Produce(EmployeeEvent(EmployeeCreated, employee))

		assert.Equal(t, 1, len(producer.events))
	})

	t.Run("dropped event when queue full", func(t *testing.T) {
		core, recorded := observer.New(zap.WarnLevel)
		producer := newProducer(new(MockKafkaWriter), zap.New(core))
		producer.events = make(chan Event, 1)
		company := &models.Company{ID: uuid.New()}

		producer.Produce(CompanyEvent(CompanyCreated, company))
		producer.Produce(CompanyEvent(CompanyCreated, company))

		assert.Equal(t, 1, recorded.FilterMessage("Kafka producer queue full, dropping event").Len())
		assert.Equal(t, 1, recorded.FilterField(zap.String("key", "company-"+company.ID.String())).Len())
	})
}

func TestProducer_SendEvent(t *testing.T) {
	mockWriter := new(MockKafkaWriter)
	employee := &models.Employee{ID: 7, Name: "Mary", Gender: models.GenderFemale}

	producer := &Producer{
		writer: mockWriter,
		logger: zaptest.NewLogger(t),
	}

	t.Run("successful send", func(t *testing.T) {
		mockWriter.On("WriteMessages", mock.Anything, mock.Anything).Return(nil)

		event := EmployeeEvent(EmployeeUpdated, employee)
		producer.sendEvent(context.Background(), event)

		mockWriter.AssertCalled(t, "WriteMessages", mock.Anything, []kafka.Message{
			{
				Key:   []byte("employee-7"),
				Value: mustMarshal(t, event),
			},
		})
	})

	t.Run("serialization error", func(t *testing.T) {
		core, recorded := observer.New(zap.ErrorLevel)
		producer.logger = zap.New(core)
		mockWriter.Calls = nil

		oldMarshal := jsonMarshal
		jsonMarshal = func(_ any) ([]byte, error) {
			return nil, errors.New("mock marshal error")
		}
		defer func() { jsonMarshal = oldMarshal }()

		producer.sendEvent(context.Background(), EmployeeEvent(EmployeeCreated, employee))

		assert.Equal(t, 1, recorded.FilterMessage("Failed to serialize event").Len())
		assert.Equal(t, 1, recorded.FilterField(zap.String("key", "employee-7")).Len())
		mockWriter.AssertNotCalled(t, "WriteMessages", mock.Anything, mock.Anything)
	})

	t.Run("write error", func(t *testing.T) {
		core, recorded := observer.New(zap.ErrorLevel)
		producer.logger = zap.New(core)
		mockWriter.ExpectedCalls = nil
		mockWriter.On("WriteMessages", mock.Anything, mock.Anything).Return(errors.New("kafka error"))

		producer.sendEvent(context.Background(), EmployeeEvent(EmployeeDeleted, employee))

		assert.Equal(t, 1, recorded.FilterMessage("Failed to produce event").Len())
		assert.Equal(t, 1, recorded.FilterField(zap.String("event_type", string(EmployeeDeleted))).Len())
	})
}

func TestProducer_EventLoop(t *testing.T) {
	mockWriter := new(MockKafkaWriter)
	sent := make(chan []kafka.Message, 1)
	mockWriter.On("WriteMessages", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) { sent <- args.Get(1).([]kafka.Message) }).
		Return(nil)
	mockWriter.On("Close").Return(nil)

	producer := newProducer(mockWriter, zaptest.NewLogger(t))
	go producer.eventLoop()

	producer.Produce(EmployeeEvent(EmployeeCreated, &models.Employee{ID: 3}))

	select {
	case msgs := <-sent:
		require.Len(t, msgs, 1)
		assert.Equal(t, []byte("employee-3"), msgs[0].Key)
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for event to be written")
	}

	producer.Close()
	mockWriter.AssertCalled(t, "Close")
}

func TestProducer_Close(t *testing.T) {
	t.Run("drains queued events", func(t *testing.T) {
		mockWriter := new(MockKafkaWriter)
		mockWriter.On("WriteMessages", mock.Anything, mock.Anything).Return(nil)
		mockWriter.On("Close").Return(nil)

		producer := newProducer(mockWriter, zaptest.NewLogger(t))
		for i := 1; i <= 3; i++ {
			producer.Produce(EmployeeEvent(EmployeeCreated, &models.Employee{ID: i}))
		}

		go producer.eventLoop()
		producer.Close()

		select {
		case <-producer.closeChan:
		default:
			t.Error("closeChan not closed")
		}
		mockWriter.AssertNumberOfCalls(t, "WriteMessages", 3)
		mockWriter.AssertCalled(t, "Close")
	})

	t.Run("close error is logged", func(t *testing.T) {
		core, recorded := observer.New(zap.ErrorLevel)
		mockWriter := new(MockKafkaWriter)
		mockWriter.On("Close").Return(errors.New("close failed"))

		producer := newProducer(mockWriter, zap.New(core))
		go producer.eventLoop()
		producer.Close()

		assert.Equal(t, 1, recorded.FilterMessage("Failed to close Kafka writer").Len())
	})
}

func TestNopProducer(t *testing.T) {
	assert.NotPanics(t, func() {
		NopProducer{}.Produce(EmployeeEvent(EmployeeCreated, &models.Employee{ID: 1}))
	})
}
