package snowtype

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/google/uuid"
)

// ConnectorConfig carries everything needed to reach the Snowflake SQL API
// with key-pair auth. Role and Warehouse, when set, become the defaults for
// every statement.
type ConnectorConfig struct {
	Host           string
	Account        string
	User           string
	PublicKeyPath  string
	PrivateKeyPath string
	Role           string
	Warehouse      string
}

// Connector talks to the Snowflake SQL API over HTTPS. It holds no
// connection state beyond the HTTP client and auth token, so it is safe for
// concurrent use. Retry and cancellation policy belong to callers via the
// context; the connector never retries.
type Connector struct {
	baseURL   string
	token     string
	role      string
	warehouse string
	client    *http.Client
}

// NewConnector reads the key pair, signs the auth token, and returns a
// ready connector.
func NewConnector(cc ConnectorConfig) (*Connector, error) {
	pub, err := os.ReadFile(cc.PublicKeyPath)
	if err != nil {
		return nil, fmt.Errorf("read public key: %w", err)
	}
	priv, err := os.ReadFile(cc.PrivateKeyPath)
	if err != nil {
		return nil, fmt.Errorf("read private key: %w", err)
	}
	token, err := keyPairToken(pub, priv, cc.Account, cc.User, time.Now())
	if err != nil {
		return nil, fmt.Errorf("sign auth token: %w", err)
	}
	return &Connector{
		baseURL:   fmt.Sprintf("https://%s.snowflakecomputing.com/api/v2/", cc.Host),
		token:     token,
		role:      cc.Role,
		warehouse: cc.Warehouse,
		client:    &http.Client{},
	}, nil
}

// Execute scopes subsequent statements to one database.
func (c *Connector) Execute(database string) *Executor {
	return &Executor{c: c, database: database}
}

// Executor builds statements against a single database.
type Executor struct {
	c        *Connector
	database string
}

// SQL starts a statement. Further options chain off the returned value.
func (e *Executor) SQL(statement string) *Statement {
	return &Statement{
		c:         e.c,
		requestID: uuid.New(),
		payload: statementPayload{
			Statement: statement,
			Database:  e.database,
			Role:      e.c.role,
			Warehouse: e.c.warehouse,
		},
	}
}

type statementPayload struct {
	Statement string             `json:"statement"`
	Timeout   int                `json:"timeout,omitempty"`
	Database  string             `json:"database"`
	Warehouse string             `json:"warehouse,omitempty"`
	Role      string             `json:"role,omitempty"`
	Bindings  map[string]binding `json:"bindings,omitempty"`
}

// Statement is one pending SQL API request.
type Statement struct {
	c         *Connector
	payload   statementPayload
	requestID uuid.UUID
	err       error // first builder error, surfaced on Select
}

// WithTimeout sets the server-side statement timeout in seconds.
func (s *Statement) WithTimeout(seconds int) *Statement {
	s.payload.Timeout = seconds
	return s
}

func (s *Statement) WithRole(role string) *Statement {
	s.payload.Role = role
	return s
}

func (s *Statement) WithWarehouse(warehouse string) *Statement {
	s.payload.Warehouse = warehouse
	return s
}

// Bind appends one positional binding. Bindings are keyed "1", "2", ... in
// call order, matching the statement's ? placeholders.
func (s *Statement) Bind(v any) *Statement {
	b, err := newBinding(v)
	if err != nil {
		if s.err == nil {
			s.err = err
		}
		return s
	}
	if s.payload.Bindings == nil {
		s.payload.Bindings = make(map[string]binding)
	}
	s.payload.Bindings[strconv.Itoa(len(s.payload.Bindings)+1)] = b
	return s
}

// QueryResponse is the SQL API's result payload: ordered column metadata
// plus rows of nullable string cells.
type QueryResponse struct {
	ResultSetMetaData ResultSetMetaData `json:"resultSetMetaData"`
	Data              [][]*string       `json:"data"`
	Code              string            `json:"code"`
	StatementHandle   string            `json:"statementHandle"`
	SQLState          string            `json:"sqlState"`
	Message           string            `json:"message"`
}

type ResultSetMetaData struct {
	NumRows int64     `json:"numRows"`
	Format  string    `json:"format"`
	RowType []RowType `json:"rowType"`
}

// RowType is one resultSetMetaData.rowType entry on the wire.
type RowType struct {
	Name       string `json:"name"`
	Database   string `json:"database"`
	Schema     string `json:"schema"`
	Table      string `json:"table"`
	Type       string `json:"type"`
	Precision  *int64 `json:"precision"`
	Scale      *int64 `json:"scale"`
	ByteLength *int64 `json:"byteLength"`
	Nullable   bool   `json:"nullable"`
}

// Columns converts the wire metadata into ordered column descriptors.
func (r *QueryResponse) Columns() []Column {
	cols := make([]Column, len(r.ResultSetMetaData.RowType))
	for i, rt := range r.ResultSetMetaData.RowType {
		cols[i] = Column{
			Name:       rt.Name,
			Database:   rt.Database,
			Schema:     rt.Schema,
			Table:      rt.Table,
			SQLType:    rt.Type,
			Precision:  derefInt64(rt.Precision),
			Scale:      derefInt64(rt.Scale),
			Nullable:   rt.Nullable,
			OrdinalPos: i,
		}
	}
	return cols
}

// ColumnNames returns the ordered column-name list, informational for
// callers pairing rows with a schema.
func (r *QueryResponse) ColumnNames() []string {
	names := make([]string, len(r.ResultSetMetaData.RowType))
	for i, rt := range r.ResultSetMetaData.RowType {
		names[i] = rt.Name
	}
	return names
}

func derefInt64(p *int64) int64 {
	if p == nil {
		return 0
	}
	return *p
}

// apiFailure is the SQL API's error payload for failed statements.
type apiFailure struct {
	Code     string `json:"code"`
	SQLState string `json:"sqlState"`
	Message  string `json:"message"`
}

// Select submits the statement and decodes the result set.
func (s *Statement) Select(ctx context.Context) (*QueryResponse, error) {
	if s.err != nil {
		return nil, s.err
	}

	body, err := json.Marshal(s.payload)
	if err != nil {
		return nil, fmt.Errorf("encode statement: %w", err)
	}
	url := fmt.Sprintf("%sstatements?nullable=true&requestId=%s", s.c.baseURL, s.requestID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Authorization", "Bearer "+s.c.token)
	req.Header.Set("X-Snowflake-Authorization-Token-Type", "KEYPAIR_JWT")
	req.Header.Set("User-Agent", "snowtype")

	resp, err := s.c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("submit statement: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		var failure apiFailure
		if decodeErr := json.NewDecoder(resp.Body).Decode(&failure); decodeErr == nil && failure.Message != "" {
			return nil, fmt.Errorf("statement failed (HTTP %d, code %s, sql state %s): %s",
				resp.StatusCode, failure.Code, failure.SQLState, failure.Message)
		}
		return nil, fmt.Errorf("statement failed with HTTP %d", resp.StatusCode)
	}

	var qr QueryResponse
	if err := json.NewDecoder(resp.Body).Decode(&qr); err != nil {
		return nil, fmt.Errorf("decode result set: %w", err)
	}
	return &qr, nil
}

// TableColumns fetches the ordered column descriptors for a qualified table
// by running a zero-row select, the same metadata the runtime sees. This is
// the Generator's MetadataFetcher.
func (c *Connector) TableColumns(ctx context.Context, database, table string) ([]Column, error) {
	stmt := fmt.Sprintf("SELECT * FROM %s LIMIT 0", table)
	resp, err := c.Execute(database).SQL(stmt).Select(ctx)
	if err != nil {
		return nil, &MetadataFetchError{Database: database, Table: table, Err: err}
	}
	cols := resp.Columns()
	if len(cols) == 0 {
		return nil, &MetadataFetchError{Database: database, Table: table, Err: fmt.Errorf("response carried no column metadata")}
	}
	return cols, nil
}
