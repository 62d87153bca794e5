package metadata

// TableDescriptor is one row of the table list.
type TableDescriptor struct {
	Name string
}

// FieldDescriptor is one row of the field description list.
// IsNull, IsPrimary, IsIdentity and IsUnique keep the raw cell text; use the methods to
// interpret them.
type FieldDescriptor struct {
	TableName   string
	FieldName   string
	DataType    string
	IsNull      string
	IsPrimary   string
	Description string
	IsIdentity  string
	IsUnique    string
}

// Nullable reports whether the field is rendered NULL.
func (f FieldDescriptor) Nullable() bool {
	return ParseNullable(f.IsNull)
}

// Primary reports whether the field belongs to the table's primary key.
func (f FieldDescriptor) Primary() bool {
	return ParsePrimary(f.IsPrimary)
}

// Identity reports whether the database generates the field's values.
func (f FieldDescriptor) Identity() bool {
	return ParsePrimary(f.IsIdentity)
}

// Unique reports whether the field's values must be distinct.
func (f FieldDescriptor) Unique() bool {
	return ParsePrimary(f.IsUnique)
}

// RelationDescriptor is a directed foreign key edge: child column -> parent column.
type RelationDescriptor struct {
	ChildTable   string
	ChildColumn  string
	ParentTable  string
	ParentColumn string
}

// Set holds the three metadata sources in input row order.
type Set struct {
	Tables    []TableDescriptor
	Fields    []FieldDescriptor
	Relations []RelationDescriptor
}

// Paths locates the three metadata files.
type Paths struct {
	Tables    string
	Fields    string
	Relations string
}

// DefaultPaths are the file names the metadata export has always used.
var DefaultPaths = Paths{
	Tables:    "Tables.csv",
	Fields:    "All_Fielddescriptions.csv",
	Relations: "Relation_Keys.csv",
}

// Header names (lowercase). Loading folds source headers to lowercase before matching.
const (
	ColTableName    = "tablename"
	ColFieldName    = "fieldname"
	ColDataType     = "datatype"
	ColIsNull       = "isnull"
	ColIsPrimary    = "isprimary"
	ColDescription  = "description"
	ColIsIdentity   = "isidentity"
	ColIsUnique     = "isunique"
	ColChildTable   = "child_table"
	ColChildColumn  = "child_column"
	ColParentTable  = "parent_table"
	ColParentColumn = "parent_column"
)
