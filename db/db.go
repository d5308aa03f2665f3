package db

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"sync"
	"time"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/dynamodb"
	"github.com/aws/aws-sdk-go/service/dynamodb/dynamodbiface"
	"github.com/jsphweid/fretchord/model"
	"github.com/jsphweid/fretchord/pitch"
)

var (
	ErrPresetNotFound = errors.New("preset not found")
	ErrInvalidPreset  = errors.New("invalid preset")
)

// PresetStore keeps named chords.
type PresetStore interface {
	Save(ctx context.Context, p model.Preset) error
	Get(ctx context.Context, name string) (model.Preset, error)
	List(ctx context.Context) ([]model.Preset, error)
}

func validate(p model.Preset) error {
	if p.Name == "" {
		return fmt.Errorf("%w: missing name", ErrInvalidPreset)
	}
	if _, err := pitch.ParseChord(p.Chord); err != nil {
		return fmt.Errorf("%w %q: %w", ErrInvalidPreset, p.Name, err)
	}
	return nil
}

type DynamoStore struct {
	client dynamodbiface.DynamoDBAPI
	table  string
	now    func() time.Time
}

// NewDynamoStore connects to endpoint, a local DynamoDB by default. Static
// dummy credentials are used when the endpoint is local and none are set.
func NewDynamoStore(endpoint, region, table string) (*DynamoStore, error) {
	cfg := &aws.Config{Region: aws.String(region)}
	if endpoint != "" {
		cfg.Endpoint = aws.String(endpoint)
		cfg.Credentials = credentials.NewChainCredentials([]credentials.Provider{
			&credentials.EnvProvider{},
			&credentials.StaticProvider{Value: credentials.Value{
				AccessKeyID:     "local",
				SecretAccessKey: "local",
			}},
		})
	}
	sess, err := session.NewSession(cfg)
	if err != nil {
		return nil, fmt.Errorf("could not create a new DynamoDB session: %w", err)
	}
	return NewDynamoStoreWithClient(dynamodb.New(sess), table), nil
}

func NewDynamoStoreWithClient(client dynamodbiface.DynamoDBAPI, table string) *DynamoStore {
	return &DynamoStore{client: client, table: table, now: time.Now}
}

func (s *DynamoStore) Save(ctx context.Context, p model.Preset) error {
	if err := validate(p); err != nil {
		return err
	}
	p.SavedAt = s.now().Unix()

	item := map[string]*dynamodb.AttributeValue{
		"PK":      {S: aws.String(p.Name)},
		"Chord":   {L: stringList(p.Chord)},
		"Spread":  {BOOL: aws.Bool(p.Spread)},
		"SavedAt": {N: aws.String(strconv.FormatInt(p.SavedAt, 10))},
	}
	if p.Instrument != "" {
		item["Instrument"] = &dynamodb.AttributeValue{S: aws.String(p.Instrument)}
	}

	_, err := s.client.PutItemWithContext(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(s.table),
		Item:      item,
	})
	if err != nil {
		return fmt.Errorf("error from DynamoDB: %w", err)
	}
	return nil
}

func (s *DynamoStore) Get(ctx context.Context, name string) (model.Preset, error) {
	out, err := s.client.GetItemWithContext(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(s.table),
		Key: map[string]*dynamodb.AttributeValue{
			"PK": {S: aws.String(name)},
		},
	})
	if err != nil {
		return model.Preset{}, fmt.Errorf("error from DynamoDB: %w", err)
	}
	if len(out.Item) == 0 {
		return model.Preset{}, fmt.Errorf("%w: %q", ErrPresetNotFound, name)
	}
	return fromItem(out.Item), nil
}

func (s *DynamoStore) List(ctx context.Context) ([]model.Preset, error) {
	var res []model.Preset
	err := s.client.ScanPagesWithContext(ctx, &dynamodb.ScanInput{
		TableName: aws.String(s.table),
	}, func(page *dynamodb.ScanOutput, lastPage bool) bool {
		for _, item := range page.Items {
			res = append(res, fromItem(item))
		}
		return true
	})
	if err != nil {
		return nil, fmt.Errorf("error from DynamoDB: %w", err)
	}
	sortByName(res)
	return res, nil
}

func stringList(ss []string) []*dynamodb.AttributeValue {
	res := make([]*dynamodb.AttributeValue, len(ss))
	for i, s := range ss {
		res[i] = &dynamodb.AttributeValue{S: aws.String(s)}
	}
	return res
}

func fromItem(item map[string]*dynamodb.AttributeValue) model.Preset {
	var p model.Preset
	if v := item["PK"]; v != nil && v.S != nil {
		p.Name = *v.S
	}
	if v := item["Chord"]; v != nil {
		for _, e := range v.L {
			if e.S != nil {
				p.Chord = append(p.Chord, *e.S)
			}
		}
	}
	if v := item["Instrument"]; v != nil && v.S != nil {
		p.Instrument = *v.S
	}
	if v := item["Spread"]; v != nil && v.BOOL != nil {
		p.Spread = *v.BOOL
	}
	if v := item["SavedAt"]; v != nil && v.N != nil {
		p.SavedAt, _ = strconv.ParseInt(*v.N, 10, 64)
	}
	return p
}

func sortByName(ps []model.Preset) {
	sort.Slice(ps, func(i, j int) bool {
		return ps[i].Name < ps[j].Name
	})
}

// MemoryStore keeps presets in process. Used when no DynamoDB is configured
// and in tests.
type MemoryStore struct {
	mu      sync.RWMutex
	presets map[string]model.Preset
	now     func() time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{presets: make(map[string]model.Preset), now: time.Now}
}

func (m *MemoryStore) Save(_ context.Context, p model.Preset) error {
	if err := validate(p); err != nil {
		return err
	}
	p.SavedAt = m.now().Unix()
	p.Chord = append([]string(nil), p.Chord...)
	m.mu.Lock()
	defer m.mu.Unlock()
	m.presets[p.Name] = p
	return nil
}

func (m *MemoryStore) Get(_ context.Context, name string) (model.Preset, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	p, ok := m.presets[name]
	if !ok {
		return model.Preset{}, fmt.Errorf("%w: %q", ErrPresetNotFound, name)
	}
	return p, nil
}

func (m *MemoryStore) List(_ context.Context) ([]model.Preset, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	res := make([]model.Preset, 0, len(m.presets))
	for _, p := range m.presets {
		res = append(res, p)
	}
	sortByName(res)
	return res, nil
}
