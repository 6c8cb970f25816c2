package reader

var sqlServerCatalog = &catalog{
	currentOwner: `SELECT SCHEMA_NAME()`,

	tables: `
SELECT s.name, t.name, CAST(ep.value AS nvarchar(max))
FROM sys.tables t
JOIN sys.schemas s ON s.schema_id = t.schema_id
LEFT JOIN sys.extended_properties ep
  ON ep.major_id = t.object_id AND ep.minor_id = 0 AND ep.class = 1 AND ep.name = 'MS_Description'
WHERE s.name = @p1 AND t.is_ms_shipped = 0
ORDER BY t.name`,

	columns: `
SELECT s.name, t.name, c.name, ty.name,
       CASE WHEN c.max_length = -1 THEN -1
            WHEN ty.name IN ('nvarchar', 'nchar') THEN c.max_length / 2
            WHEN ty.name IN ('varchar', 'char', 'varbinary', 'binary') THEN c.max_length END,
       CASE WHEN ty.name IN ('decimal', 'numeric') THEN CAST(c.precision AS int) END,
       CASE WHEN ty.name IN ('decimal', 'numeric') THEN CAST(c.scale AS int) END,
       CAST(c.is_nullable AS int),
       dc.definition,
       CAST(c.is_identity AS int),
       CAST(ep.value AS nvarchar(max))
FROM sys.columns c
JOIN sys.tables t ON t.object_id = c.object_id
JOIN sys.schemas s ON s.schema_id = t.schema_id
JOIN sys.types ty ON ty.user_type_id = c.user_type_id
LEFT JOIN sys.default_constraints dc ON dc.object_id = c.default_object_id
LEFT JOIN sys.extended_properties ep
  ON ep.major_id = c.object_id AND ep.minor_id = c.column_id AND ep.class = 1 AND ep.name = 'MS_Description'
WHERE s.name = @p1 AND t.is_ms_shipped = 0
ORDER BY t.name, c.column_id`,

	constraints: []string{`
SELECT s.name, t.name, kc.name, CASE kc.type WHEN 'PK' THEN 'P' ELSE 'U' END,
       c.name, ic.key_ordinal, NULL,
       NULL, NULL, NULL, NULL, NULL
FROM sys.key_constraints kc
JOIN sys.tables t ON t.object_id = kc.parent_object_id
JOIN sys.schemas s ON s.schema_id = t.schema_id
JOIN sys.index_columns ic ON ic.object_id = kc.parent_object_id AND ic.index_id = kc.unique_index_id
JOIN sys.columns c ON c.object_id = ic.object_id AND c.column_id = ic.column_id
WHERE s.name = @p1
ORDER BY t.name, kc.name, ic.key_ordinal`, `
SELECT s.name, t.name, cc.name, 'C',
       c.name, 1, cc.definition,
       NULL, NULL, NULL, NULL, NULL
FROM sys.check_constraints cc
JOIN sys.tables t ON t.object_id = cc.parent_object_id
JOIN sys.schemas s ON s.schema_id = t.schema_id
LEFT JOIN sys.columns c ON c.object_id = cc.parent_object_id AND c.column_id = cc.parent_column_id
WHERE s.name = @p1
ORDER BY t.name, cc.name`, `
SELECT s.name, t.name, fk.name, 'F',
       c.name, fkc.constraint_column_id, NULL,
       rs.name, rt.name, rcol.name,
       REPLACE(fk.delete_referential_action_desc, '_', ' '),
       REPLACE(fk.update_referential_action_desc, '_', ' ')
FROM sys.foreign_keys fk
JOIN sys.tables t ON t.object_id = fk.parent_object_id
JOIN sys.schemas s ON s.schema_id = t.schema_id
JOIN sys.foreign_key_columns fkc ON fkc.constraint_object_id = fk.object_id
JOIN sys.columns c ON c.object_id = fkc.parent_object_id AND c.column_id = fkc.parent_column_id
JOIN sys.tables rt ON rt.object_id = fk.referenced_object_id
JOIN sys.schemas rs ON rs.schema_id = rt.schema_id
JOIN sys.columns rcol ON rcol.object_id = fkc.referenced_object_id AND rcol.column_id = fkc.referenced_column_id
WHERE s.name = @p1
ORDER BY t.name, fk.name, fkc.constraint_column_id`},

	indexes: `
SELECT s.name, t.name, i.name, i.type_desc, CAST(i.is_unique AS int),
       c.name, ic.key_ordinal, CAST(ic.is_descending_key AS int)
FROM sys.indexes i
JOIN sys.tables t ON t.object_id = i.object_id
JOIN sys.schemas s ON s.schema_id = t.schema_id
JOIN sys.index_columns ic ON ic.object_id = i.object_id AND ic.index_id = i.index_id AND ic.is_included_column = 0
JOIN sys.columns c ON c.object_id = ic.object_id AND c.column_id = ic.column_id
WHERE s.name = @p1 AND i.name IS NOT NULL AND i.is_hypothetical = 0
ORDER BY t.name, i.name, ic.key_ordinal`,

	triggers: `
SELECT s.name, t.name, tr.name, OBJECT_DEFINITION(tr.object_id),
       CASE WHEN tr.is_instead_of_trigger = 1 THEN 'INSTEAD OF' ELSE 'AFTER' END,
       STUFF((SELECT ', ' + te.type_desc FROM sys.trigger_events te
              WHERE te.object_id = tr.object_id FOR XML PATH('')), 1, 2, '')
FROM sys.triggers tr
JOIN sys.tables t ON t.object_id = tr.parent_id
JOIN sys.schemas s ON s.schema_id = t.schema_id
WHERE s.name = @p1
ORDER BY t.name, tr.name`,

	views: `
SELECT s.name, v.name, m.definition
FROM sys.views v
JOIN sys.schemas s ON s.schema_id = v.schema_id
JOIN sys.sql_modules m ON m.object_id = v.object_id
WHERE s.name = @p1
ORDER BY v.name`,

	routines: `
SELECT s.name, o.name, CASE WHEN o.type = 'P' THEN 'P' ELSE 'F' END, m.definition, NULL
FROM sys.objects o
JOIN sys.schemas s ON s.schema_id = o.schema_id
JOIN sys.sql_modules m ON m.object_id = o.object_id
WHERE s.name = @p1 AND o.type IN ('P', 'FN', 'IF', 'TF') AND o.is_ms_shipped = 0
ORDER BY o.name`,

	sequences: `
SELECT s.name, sq.name,
       CAST(sq.minimum_value AS bigint), CAST(sq.maximum_value AS bigint), CAST(sq.increment AS bigint)
FROM sys.sequences sq
JOIN sys.schemas s ON s.schema_id = sq.schema_id
WHERE s.name = @p1
ORDER BY sq.name`,

	userDataTypes: `
SELECT s.name, ut.name, bt.name,
       CASE WHEN ut.max_length = -1 THEN -1
            WHEN bt.name IN ('nvarchar', 'nchar') THEN ut.max_length / 2
            WHEN bt.name IN ('varchar', 'char', 'varbinary', 'binary') THEN ut.max_length END,
       CASE WHEN bt.name IN ('decimal', 'numeric') THEN CAST(ut.precision AS int) END,
       CASE WHEN bt.name IN ('decimal', 'numeric') THEN CAST(ut.scale AS int) END,
       CAST(ut.is_nullable AS int),
       OBJECT_DEFINITION(ut.default_object_id)
FROM sys.types ut
JOIN sys.types bt ON bt.user_type_id = ut.system_type_id
JOIN sys.schemas s ON s.schema_id = ut.schema_id
WHERE s.name = @p1 AND ut.is_user_defined = 1 AND ut.is_table_type = 0
ORDER BY ut.name`,

	tableTypes: `
SELECT s.name, tt.name, c.name, ty.name,
       CASE WHEN c.max_length = -1 THEN -1
            WHEN ty.name IN ('nvarchar', 'nchar') THEN c.max_length / 2
            WHEN ty.name IN ('varchar', 'char', 'varbinary', 'binary') THEN c.max_length END,
       CASE WHEN ty.name IN ('decimal', 'numeric') THEN CAST(c.precision AS int) END,
       CASE WHEN ty.name IN ('decimal', 'numeric') THEN CAST(c.scale AS int) END,
       CAST(c.is_nullable AS int)
FROM sys.table_types tt
JOIN sys.schemas s ON s.schema_id = tt.schema_id
JOIN sys.columns c ON c.object_id = tt.type_table_object_id
JOIN sys.types ty ON ty.user_type_id = c.user_type_id
WHERE s.name = @p1
ORDER BY tt.name, c.column_id`,
}
