package dataset

import (
	"encoding/binary"
	"encoding/json"
	"math"
	"strings"

	"github.com/datadex-io/datadex/internal/domain/dataset"
)

// Hash field names of a stored dataset record.
const (
	fieldName              = "name"
	fieldType              = "dataset_type"
	fieldBusinessCategory  = "business_category"
	fieldTechnicalCategory = "technical_category"
	fieldKeyFields         = "key_fields"
	fieldSchemaInfo        = "schema_info"
	fieldDescription       = "description"
	fieldInterfaces        = "interfaces"
	fieldExcluded          = "excluded"
	fieldVector            = "vector"
)

// returnFields lists the metadata fields retrieval queries ask the store for.
var returnFields = []string{
	fieldName, fieldType, fieldBusinessCategory, fieldTechnicalCategory,
	fieldKeyFields, fieldSchemaInfo, fieldDescription, fieldInterfaces,
	"__vector_score",
}

// recordFromFields maps a loose store row onto a typed Record. Malformed
// JSON payloads (key_fields, schema_info, interfaces) degrade to empty values
// so one bad row never aborts a retrieval batch.
func recordFromFields(id string, fields map[string]string) dataset.Record {
	r := dataset.Record{
		ID:                id,
		Name:              fields[fieldName],
		Type:              dataset.ParseType(fields[fieldType]),
		BusinessCategory:  fields[fieldBusinessCategory],
		TechnicalCategory: fields[fieldTechnicalCategory],
		Description:       fields[fieldDescription],
		Excluded:          strings.EqualFold(fields[fieldExcluded], "true"),
	}

	if raw := fields[fieldKeyFields]; raw != "" {
		var keyFields []string
		if json.Unmarshal([]byte(raw), &keyFields) == nil {
			r.KeyFields = keyFields
		}
	}

	if raw := fields[fieldSchemaInfo]; raw != "" {
		var schema dataset.Schema
		if json.Unmarshal([]byte(raw), &schema) == nil {
			r.Schema = schema
		}
	}

	if raw := fields[fieldInterfaces]; raw != "" {
		var interfaces []dataset.Interface
		if json.Unmarshal([]byte(raw), &interfaces) == nil {
			r.Interfaces = interfaces
		}
	}

	return r
}

// fieldsFromRecord serializes a record (plus its embedding) into hash fields.
func fieldsFromRecord(r *dataset.Record, vector []float32) (map[string]string, error) {
	keyFields, err := json.Marshal(r.KeyFields)
	if err != nil {
		return nil, err
	}
	schema, err := json.Marshal(r.Schema)
	if err != nil {
		return nil, err
	}
	interfaces, err := json.Marshal(r.Interfaces)
	if err != nil {
		return nil, err
	}

	excluded := "false"
	if r.Excluded {
		excluded = "true"
	}

	fields := map[string]string{
		fieldName:              r.Name,
		fieldType:              string(r.Type),
		fieldBusinessCategory:  r.BusinessCategory,
		fieldTechnicalCategory: r.TechnicalCategory,
		fieldKeyFields:         string(keyFields),
		fieldSchemaInfo:        string(schema),
		fieldDescription:       r.Description,
		fieldInterfaces:        string(interfaces),
		fieldExcluded:          excluded,
	}

	if len(vector) > 0 {
		fields[fieldVector] = vectorToBytes(vector)
	}
	return fields, nil
}

func vectorToBytes(v []float32) string {
	buf := make([]byte, len(v)*4)
	for i, f := range v {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(f))
	}
	return string(buf)
}
