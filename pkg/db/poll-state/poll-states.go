package pollstate

import (
	"context"
	"log/slog"
	"time"

	"github.com/helpdesk-tools/survey-report/pkg/db"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const POLL_STATE_INDEX_NAME = "surveyTitle_1"

type PollState struct {
	SurveyTitle string    `bson:"surveyTitle"`
	LastPoll    time.Time `bson:"lastPoll"`
	UpdatedAt   time.Time `bson:"updatedAt"`
}

func (dbService *PollStateDBService) CreateIndexForPollStates() error {
	ctx, cancel := dbService.getContext(context.Background())
	defer cancel()

	collection := dbService.collectionPollStates()
	existing, err := db.ListCollectionIndexes(ctx, collection)
	if err != nil {
		return err
	}
	if db.HasIndex(existing, POLL_STATE_INDEX_NAME) {
		return nil
	}

	_, err = collection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "surveyTitle", Value: 1}},
		Options: options.Index().SetUnique(true).SetName(POLL_STATE_INDEX_NAME),
	})
	return err
}

func pollStateFilter(surveyTitle string) bson.M {
	return bson.M{"surveyTitle": surveyTitle}
}

func pollStateUpdate(lastPoll time.Time, now time.Time) bson.M {
	return bson.M{
		"$set": bson.M{
			"lastPoll":  lastPoll.UTC(),
			"updatedAt": now.UTC(),
		},
	}
}

func (dbService *PollStateDBService) GetPollState(ctx context.Context, surveyTitle string) (*PollState, error) {
	ctx, cancel := dbService.getContext(ctx)
	defer cancel()

	state := &PollState{}
	err := dbService.collectionPollStates().FindOne(ctx, pollStateFilter(surveyTitle)).Decode(state)
	if err != nil {
		return nil, err
	}
	return state, nil
}

func (dbService *PollStateDBService) SavePollState(ctx context.Context, surveyTitle string, lastPoll time.Time) error {
	ctx, cancel := dbService.getContext(ctx)
	defer cancel()

	_, err := dbService.collectionPollStates().UpdateOne(
		ctx,
		pollStateFilter(surveyTitle),
		pollStateUpdate(lastPoll, time.Now()),
		options.Update().SetUpsert(true),
	)
	if err != nil {
		slog.Error("Error saving poll state", slog.String("surveyTitle", surveyTitle), slog.String("error", err.Error()))
	}
	return err
}

// SurveyStore binds the service to one survey title so it can serve as the
// poll job's state store.
type SurveyStore struct {
	dbService   *PollStateDBService
	surveyTitle string
}

func (dbService *PollStateDBService) ForSurvey(surveyTitle string) *SurveyStore {
	return &SurveyStore{dbService: dbService, surveyTitle: surveyTitle}
}

func (s *SurveyStore) LastPoll(ctx context.Context) (time.Time, bool, error) {
	state, err := s.dbService.GetPollState(ctx, s.surveyTitle)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return time.Time{}, false, nil
		}
		return time.Time{}, false, err
	}
	return state.LastPoll.Local(), true, nil
}

func (s *SurveyStore) SetLastPoll(ctx context.Context, t time.Time) error {
	return s.dbService.SavePollState(ctx, s.surveyTitle, t)
}
