package repository

import (
	"context"
	"database/sql"
	"fmt"
	"reflect"
	"sort"
	"strings"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/sqlscan"

	"github.com/go-arrower/catalog/ctx"
	"github.com/go-arrower/catalog/domain"
)

// CtxTX is the context key of a *sql.Tx.
// If a context carries a transaction, the SQLRepository executes all statements in it.
const CtxTX ctx.CTXKey = "catalog.tx"

// Dialect decides the placeholder format of the generated SQL.
type Dialect string

const (
	Postgres Dialect = "postgres"
	SQLite   Dialect = "sqlite"
)

func (d Dialect) builder() squirrel.StatementBuilderType {
	if d == Postgres {
		return squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	}

	return squirrel.StatementBuilder.PlaceholderFormat(squirrel.Question)
}

// contains matches column against the LIKE pattern, ignoring the case.
// PostgreSQL's ILIKE folds all letters the database locale knows,
// SQLite's LIKE folds ASCII letters only.
func (d Dialect) contains(column string, pattern string) squirrel.Sqlizer {
	if d == Postgres {
		return squirrel.Expr(column+" ILIKE ? ESCAPE '\\'", pattern)
	}

	return squirrel.Expr(column+" LIKE ? ESCAPE '\\'", pattern)
}

// Mapper converts between an entity and the model M representing its row.
// ToEntity is expected to validate the model.
type Mapper[E any, M any] interface {
	ToEntity(model M) (E, error)
	ToModel(entity E) M
}

// SQLOption configures a SQLRepository.
type SQLOption func(config *sqlConfig)

type sqlConfig struct {
	table         string
	idColumn      string
	filterColumns []string
	sortable      map[string]string
	defaultSort   string
	defaultDir    SortDirection
}

func WithTable(name string) SQLOption {
	return func(config *sqlConfig) {
		config.table = name
	}
}

// WithIDColumn sets the primary key column, it defaults to "id".
func WithIDColumn(name string) SQLOption {
	return func(config *sqlConfig) {
		config.idColumn = name
	}
}

// WithFilterColumns sets the text columns a search filter is matched against, case-insensitively.
func WithFilterColumns(columns ...string) SQLOption {
	return func(config *sqlConfig) {
		config.filterColumns = columns
	}
}

// WithSortableColumns maps the sortable field names of a search to their columns.
func WithSortableColumns(fields map[string]string) SQLOption {
	return func(config *sqlConfig) {
		config.sortable = fields
	}
}

// WithDefaultOrder sets the order used, when a search does not ask for a sortable field.
func WithDefaultOrder(field string, dir SortDirection) SQLOption {
	return func(config *sqlConfig) {
		config.defaultSort = field
		config.defaultDir = dir
	}
}

// NewSQLRepository returns a SearchableRepository for E, storing rows of the model M.
// The columns are the `db` tags of M. The table defaults to the lower case name of M.
func NewSQLRepository[E domain.Entity[ID], ID domain.Identity, M any](
	db *sql.DB,
	dialect Dialect,
	mapper Mapper[E, M],
	opts ...SQLOption,
) *SQLRepository[E, ID, M] {
	repo := &SQLRepository[E, ID, M]{
		DB:      db,
		Columns: columnNames(*new(M)),
		mapper:  mapper,
		dialect: dialect,
		sb:      dialect.builder(),
		sqlConfig: sqlConfig{
			table:         strings.ToLower(reflect.TypeOf(*new(M)).Name()),
			idColumn:      "id",
			filterColumns: nil,
			sortable:      map[string]string{},
			defaultSort:   "",
			defaultDir:    SortAsc,
		},
	}

	for _, opt := range opts {
		opt(&repo.sqlConfig)
	}

	repo.Table = repo.table

	return repo
}

// SQLRepository implements SearchableRepository on a relational database.
type SQLRepository[E domain.Entity[ID], ID domain.Identity, M any] struct {
	DB      *sql.DB
	Table   string
	Columns []string

	mapper  Mapper[E, M]
	dialect Dialect
	sb      squirrel.StatementBuilderType

	sqlConfig
}

var _ SearchableRepository[domain.Entity[domain.UUID], domain.UUID] = (*SQLRepository[domain.Entity[domain.UUID], domain.UUID, struct{}])(nil)

type dbInterface interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
}

// TxOrConn returns the transaction of ctx, if there is one.
func (repo *SQLRepository[E, ID, M]) TxOrConn(ctx context.Context) dbInterface { //nolint:ireturn // tx or db
	if tx, ok := ctx.Value(CtxTX).(*sql.Tx); ok {
		return tx
	}

	return repo.DB
}

func (repo *SQLRepository[E, ID, M]) Insert(ctx context.Context, entity E) error {
	return repo.BulkInsert(ctx, []E{entity})
}

// BulkInsert inserts all entities with a single statement.
func (repo *SQLRepository[E, ID, M]) BulkInsert(ctx context.Context, entities []E) error {
	if len(entities) == 0 {
		return nil
	}

	query := repo.sb.Insert(repo.Table).Columns(repo.Columns...)
	for _, entity := range entities {
		query = query.Values(columnValues(repo.mapper.ToModel(entity))...)
	}

	sql, args, err := query.ToSql()
	if err != nil {
		return fmt.Errorf("%w: could not build query: %v", ErrInvalidQuery, err)
	}

	_, err = repo.TxOrConn(ctx).ExecContext(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("%w: could not insert into %s: %w", ErrStorage, repo.Table, err)
	}

	return nil
}

func (repo *SQLRepository[E, ID, M]) Update(ctx context.Context, entity E) error {
	model := repo.mapper.ToModel(entity)
	values := columnValues(model)

	query := repo.sb.Update(repo.Table).Where(squirrel.Eq{repo.idColumn: entity.EntityID().String()})

	for i, name := range repo.Columns {
		if name == repo.idColumn {
			continue
		}

		query = query.Set(name, values[i])
	}

	sql, args, err := query.ToSql()
	if err != nil {
		return fmt.Errorf("%w: could not build query: %v", ErrInvalidQuery, err)
	}

	res, err := repo.TxOrConn(ctx).ExecContext(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("%w: could not update %s: %w", ErrStorage, entity.EntityID(), err)
	}

	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return domain.NewNotFoundError(entity.EntityID(), entity)
	}

	return nil
}

func (repo *SQLRepository[E, ID, M]) Delete(ctx context.Context, id ID) error {
	sql, args, err := repo.sb.Delete(repo.Table).Where(squirrel.Eq{repo.idColumn: id.String()}).ToSql()
	if err != nil {
		return fmt.Errorf("%w: could not build query: %v", ErrInvalidQuery, err)
	}

	res, err := repo.TxOrConn(ctx).ExecContext(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("%w: could not delete %s: %w", ErrStorage, id, err)
	}

	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return domain.NewNotFoundError(id, *new(E))
	}

	return nil
}

// FindByID returns the zero value of E, if no row has the id.
// If the row does not pass the validation of the Mapper, a *domain.ValidationError is returned.
func (repo *SQLRepository[E, ID, M]) FindByID(ctx context.Context, id ID) (E, error) { //nolint:ireturn,lll // valid use of generics
	query := repo.sb.Select(repo.Columns...).From(repo.Table).Where(squirrel.Eq{repo.idColumn: id.String()})

	models, err := repo.selectModels(ctx, query)
	if err != nil {
		return *new(E), err
	}

	if len(models) == 0 {
		return *new(E), nil
	}

	return repo.mapper.ToEntity(models[0])
}

func (repo *SQLRepository[E, ID, M]) FindAll(ctx context.Context) ([]E, error) {
	models, err := repo.selectModels(ctx, repo.sb.Select(repo.Columns...).From(repo.Table))
	if err != nil {
		return nil, err
	}

	return repo.toEntities(models)
}

func (repo *SQLRepository[E, ID, M]) SortableFields() []string {
	fields := make([]string, 0, len(repo.sortable))
	for field := range repo.sortable {
		fields = append(fields, field)
	}

	sort.Strings(fields)

	return fields
}

// Search filters, sorts, and paginates in the database.
// Rows with the same sort value are ordered by their id, not by insertion.
func (repo *SQLRepository[E, ID, M]) Search(ctx context.Context, params SearchParams) (SearchResult[E], error) {
	var where squirrel.Sqlizer

	if filter := params.Filter(); filter != "" && len(repo.filterColumns) > 0 {
		or := squirrel.Or{}
		pattern := "%" + escapeLike(filter) + "%"

		for _, column := range repo.filterColumns {
			or = append(or, repo.dialect.contains(column, pattern))
		}

		where = or
	}

	countQuery := repo.sb.Select("COUNT(*)").From(repo.Table)
	selectQuery := repo.sb.Select(repo.Columns...).From(repo.Table)

	if where != nil {
		countQuery = countQuery.Where(where)
		selectQuery = selectQuery.Where(where)
	}

	sql, args, err := countQuery.ToSql()
	if err != nil {
		return SearchResult[E]{}, fmt.Errorf("%w: could not build query: %v", ErrInvalidQuery, err)
	}

	var total int

	err = sqlscan.Get(ctx, repo.TxOrConn(ctx), &total, sql, args...)
	if err != nil {
		return SearchResult[E]{}, fmt.Errorf("%w: could not count %s: %w", ErrStorage, repo.Table, err)
	}

	if params.Offset() >= total {
		return NewSearchResult([]E{}, total, params.Page(), params.PerPage()), nil
	}

	if orderBy := repo.orderBy(params.Sort(), params.SortDir()); orderBy != "" {
		selectQuery = selectQuery.OrderBy(orderBy, repo.idColumn)
	}

	selectQuery = selectQuery.
		Limit(uint64(params.PerPage())). //nolint:gosec // normalised to be positive
		Offset(uint64(params.Offset()))  //nolint:gosec // normalised to be positive

	models, err := repo.selectModels(ctx, selectQuery)
	if err != nil {
		return SearchResult[E]{}, err
	}

	entities, err := repo.toEntities(models)
	if err != nil {
		return SearchResult[E]{}, err
	}

	return NewSearchResult(entities, total, params.Page(), params.PerPage()), nil
}

func (repo *SQLRepository[E, ID, M]) orderBy(field string, dir SortDirection) string {
	column, ok := repo.sortable[field]
	if !ok {
		column, ok = repo.sortable[repo.defaultSort]
		if !ok {
			return ""
		}

		dir = repo.defaultDir
	}

	if dir == SortDesc {
		return column + " DESC"
	}

	return column + " ASC"
}

func (repo *SQLRepository[E, ID, M]) selectModels(ctx context.Context, query squirrel.SelectBuilder) ([]M, error) {
	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: could not build query: %v", ErrInvalidQuery, err)
	}

	models := []M{}

	err = sqlscan.Select(ctx, repo.TxOrConn(ctx), &models, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: could not select from %s: %w", ErrStorage, repo.Table, err)
	}

	return models, nil
}

func (repo *SQLRepository[E, ID, M]) toEntities(models []M) ([]E, error) {
	entities := make([]E, 0, len(models))

	for _, model := range models {
		entity, err := repo.mapper.ToEntity(model)
		if err != nil {
			return nil, err
		}

		entities = append(entities, entity)
	}

	return entities, nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`) //nolint:gochecknoglobals // immutable

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}

// columnNames returns the `db` tags of the fields of model, in field order.
func columnNames[M any](model M) []string {
	columns := []string{}

	t := reflect.TypeOf(model)
	for i := range t.NumField() {
		if name := dbTag(t.Field(i)); name != "" {
			columns = append(columns, name)
		}
	}

	return columns
}

// columnValues returns the values of the fields with a `db` tag, in the same order as columnNames.
func columnValues[M any](model M) []any {
	values := []any{}

	v := reflect.ValueOf(model)
	t := v.Type()

	for i := range t.NumField() {
		if dbTag(t.Field(i)) != "" {
			values = append(values, v.Field(i).Interface())
		}
	}

	return values
}

func dbTag(field reflect.StructField) string {
	name, _, _ := strings.Cut(field.Tag.Get("db"), ",")
	if name == "-" {
		return ""
	}

	return name
}
