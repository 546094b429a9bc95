package pollstate

import (
	"context"
	"log/slog"
	"time"

	"github.com/helpdesk-tools/survey-report/pkg/db"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// collection names
const (
	COLLECTION_NAME_POLL_STATES = "poll-states"
)

type PollStateDBService struct {
	DBClient     *mongo.Client
	timeout      int
	DBNamePrefix string
}

func NewPollStateDBService(configs db.DBConfig) (*PollStateDBService, error) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(configs.Timeout)*time.Second)
	defer cancel()

	dbClient, err := mongo.Connect(ctx,
		options.Client().ApplyURI(configs.URI),
		options.Client().SetMaxConnIdleTime(time.Duration(configs.IdleConnTimeout)*time.Second),
		options.Client().SetMaxPoolSize(configs.MaxPoolSize),
	)
	if err != nil {
		return nil, err
	}

	ctx, conCancel := context.WithTimeout(context.Background(), time.Duration(configs.Timeout)*time.Second)
	err = dbClient.Ping(ctx, nil)
	defer conCancel()

	if err != nil {
		return nil, err
	}

	psDBSc := &PollStateDBService{
		DBClient:     dbClient,
		timeout:      configs.Timeout,
		DBNamePrefix: configs.DBNamePrefix,
	}

	if configs.RunIndexCreation {
		psDBSc.ensureIndexes()
	}
	return psDBSc, nil
}

func (dbService *PollStateDBService) Close(ctx context.Context) error {
	return dbService.DBClient.Disconnect(ctx)
}

func (dbService *PollStateDBService) getDBName() string {
	return dbService.DBNamePrefix + "survey-report"
}

func (dbService *PollStateDBService) getContext(parent context.Context) (ctx context.Context, cancel context.CancelFunc) {
	if parent == nil {
		parent = context.Background()
	}
	return context.WithTimeout(parent, time.Duration(dbService.timeout)*time.Second)
}

func (dbService *PollStateDBService) collectionPollStates() *mongo.Collection {
	return dbService.DBClient.Database(dbService.getDBName()).Collection(COLLECTION_NAME_POLL_STATES)
}

func (dbService *PollStateDBService) ensureIndexes() {
	slog.Debug("Ensuring indexes for poll state DB")

	err := dbService.CreateIndexForPollStates()
	if err != nil {
		slog.Debug("Error creating indexes for poll states: ", slog.String("error", err.Error()))
	}
}
