package integration_tests

import (
	"context"
	"encoding/json"
	"os"
	"testing"
	"time"

	"github.com/familyfin/ledgerhub/db/models"
	"github.com/familyfin/ledgerhub/rabbitmq"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/suite"
)

// RabbitMQTestSuite needs a broker at RABBITMQ_URI.
type RabbitMQTestSuite struct {
	TestSuite
	testQueueName string
	cash          int64
	salary        int64
}

func (suite *RabbitMQTestSuite) SetupTest() {
	suite.TestSuite.SetupTest()
	suite.Require().NotNil(suite.svc.Publisher)
	suite.testQueueName = "test_ledger_events"
	suite.cash = suite.createAccount("Wallet", "cash")
	suite.salary = suite.createCategory("Salary", "income", 0)
}

func (suite *RabbitMQTestSuite) TestPublishLedgerEvent() {
	conn, err := amqp.Dial(suite.svc.Config.RabbitMQUri)
	suite.Require().NoError(err)
	defer conn.Close()

	ch, err := conn.Channel()
	suite.Require().NoError(err)
	defer ch.Close()

	q, err := ch.QueueDeclare(suite.testQueueName, false, true, false, false, nil)
	suite.Require().NoError(err)
	suite.Require().NoError(ch.QueueBind(q.Name, rabbitmq.AllLedgerEvents, suite.svc.Config.RabbitMQLedgerExchange, false, nil))

	created := suite.addTransactions(ExpectedAddTransactionRequestBody{
		AccountID:       suite.cash,
		CategoryID:      suite.salary,
		Amount:          "42",
		TransactionType: "income",
		TransactionDate: "2024-01-10",
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	msgs, err := ch.Consume(q.Name, "", true, false, false, false, nil)
	suite.Require().NoError(err)

	select {
	case msg := <-msgs:
		event := models.LedgerEvent{}
		suite.Require().NoError(json.Unmarshal(msg.Body, &event))
		suite.Equal("ledger.transaction.created", msg.RoutingKey)
		suite.Equal(event.ID.String(), msg.MessageId)
		suite.Equal([]int64{created[0].ID}, event.TransactionIDs)
	case <-ctx.Done():
		suite.FailNow("no ledger event published")
	}
}

func TestRabbitMQSuite(t *testing.T) {
	if _, ok := os.LookupEnv("RABBITMQ_URI"); !ok {
		t.Skip("RABBITMQ_URI not set")
	}
	suite.Run(t, new(RabbitMQTestSuite))
}
