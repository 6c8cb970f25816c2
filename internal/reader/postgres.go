package reader

var postgresCatalog = &catalog{
	currentOwner: `SELECT current_schema()`,

	tables: `
SELECT n.nspname, c.relname, COALESCE(obj_description(c.oid, 'pg_class'), '')
FROM pg_class c
JOIN pg_namespace n ON n.oid = c.relnamespace
WHERE n.nspname = $1 AND c.relkind IN ('r', 'p') AND NOT c.relispartition
ORDER BY c.relname`,

	columns: `
SELECT c.table_schema, c.table_name, c.column_name,
       CASE WHEN c.domain_name IS NOT NULL THEN c.domain_name
            WHEN c.data_type IN ('USER-DEFINED', 'ARRAY') THEN c.udt_name
            ELSE c.data_type END,
       CASE WHEN c.domain_name IS NULL THEN c.character_maximum_length END,
       CASE WHEN c.domain_name IS NULL AND c.data_type = 'numeric' THEN c.numeric_precision END,
       CASE WHEN c.domain_name IS NULL AND c.data_type = 'numeric' THEN c.numeric_scale END,
       CASE WHEN c.is_nullable = 'YES' THEN 1 ELSE 0 END,
       c.column_default,
       CASE WHEN c.is_identity = 'YES' THEN 1 ELSE 0 END,
       col_description(format('%I.%I', c.table_schema, c.table_name)::regclass, c.ordinal_position::int)
FROM information_schema.columns c
JOIN information_schema.tables t
  ON t.table_schema = c.table_schema AND t.table_name = c.table_name AND t.table_type = 'BASE TABLE'
WHERE c.table_schema = $1
ORDER BY c.table_name, c.ordinal_position`,

	constraints: []string{`
SELECT n.nspname, cl.relname, con.conname, upper(con.contype),
       a.attname, k.ord,
       CASE WHEN con.contype = 'c' THEN pg_get_expr(con.conbin, con.conrelid) END,
       rn.nspname, rc.relname, ra.attname,
       CASE con.confdeltype WHEN 'c' THEN 'CASCADE' WHEN 'n' THEN 'SET NULL' WHEN 'd' THEN 'SET DEFAULT'
                            WHEN 'r' THEN 'RESTRICT' WHEN 'a' THEN 'NO ACTION' END,
       CASE con.confupdtype WHEN 'c' THEN 'CASCADE' WHEN 'n' THEN 'SET NULL' WHEN 'd' THEN 'SET DEFAULT'
                            WHEN 'r' THEN 'RESTRICT' WHEN 'a' THEN 'NO ACTION' END
FROM pg_constraint con
JOIN pg_class cl ON cl.oid = con.conrelid
JOIN pg_namespace n ON n.oid = cl.relnamespace
LEFT JOIN LATERAL unnest(con.conkey) WITH ORDINALITY AS k(attnum, ord) ON true
LEFT JOIN pg_attribute a ON a.attrelid = con.conrelid AND a.attnum = k.attnum
LEFT JOIN pg_class rc ON rc.oid = con.confrelid
LEFT JOIN pg_namespace rn ON rn.oid = rc.relnamespace
LEFT JOIN pg_attribute ra ON ra.attrelid = con.confrelid AND ra.attnum = con.confkey[k.ord]
WHERE n.nspname = $1 AND con.contype IN ('p', 'u', 'c', 'f')
ORDER BY cl.relname, con.conname, k.ord`},

	indexes: `
SELECT n.nspname, t.relname, i.relname, am.amname,
       CASE WHEN ix.indisunique THEN 1 ELSE 0 END,
       a.attname, k.ord,
       ix.indoption[k.ord - 1] & 1
FROM pg_index ix
JOIN pg_class i ON i.oid = ix.indexrelid
JOIN pg_class t ON t.oid = ix.indrelid
JOIN pg_namespace n ON n.oid = t.relnamespace
JOIN pg_am am ON am.oid = i.relam
JOIN LATERAL unnest(ix.indkey::int2[]) WITH ORDINALITY AS k(attnum, ord) ON true
LEFT JOIN pg_attribute a ON a.attrelid = t.oid AND a.attnum = k.attnum
WHERE n.nspname = $1 AND k.ord <= ix.indnkeyatts
ORDER BY t.relname, i.relname, k.ord`,

	triggers: `
SELECT n.nspname, c.relname, t.tgname, pg_get_triggerdef(t.oid, true),
       CASE WHEN t.tgtype & 2 = 2 THEN 'BEFORE' WHEN t.tgtype & 64 = 64 THEN 'INSTEAD OF' ELSE 'AFTER' END,
       concat_ws(' OR ',
                 CASE WHEN t.tgtype & 4 = 4 THEN 'INSERT' END,
                 CASE WHEN t.tgtype & 16 = 16 THEN 'UPDATE' END,
                 CASE WHEN t.tgtype & 8 = 8 THEN 'DELETE' END,
                 CASE WHEN t.tgtype & 32 = 32 THEN 'TRUNCATE' END)
FROM pg_trigger t
JOIN pg_class c ON c.oid = t.tgrelid
JOIN pg_namespace n ON n.oid = c.relnamespace
WHERE n.nspname = $1 AND NOT t.tgisinternal
ORDER BY c.relname, t.tgname`,

	views: `
SELECT schemaname, viewname, definition
FROM pg_views
WHERE schemaname = $1
ORDER BY viewname`,

	routines: `
SELECT n.nspname, p.proname,
       CASE WHEN p.prokind = 'p' THEN 'P' ELSE 'F' END,
       pg_get_functiondef(p.oid),
       pg_get_function_result(p.oid)
FROM pg_proc p
JOIN pg_namespace n ON n.oid = p.pronamespace
WHERE n.nspname = $1 AND p.prokind IN ('f', 'p')
  AND NOT EXISTS (SELECT 1 FROM pg_depend d WHERE d.objid = p.oid AND d.deptype = 'e')
ORDER BY p.proname`,

	sequences: `
SELECT s.schemaname, s.sequencename, s.min_value, s.max_value, s.increment_by
FROM pg_sequences s
WHERE s.schemaname = $1
  AND NOT EXISTS (
    SELECT 1 FROM pg_depend d
    WHERE d.objid = format('%I.%I', s.schemaname, s.sequencename)::regclass
      AND d.deptype IN ('a', 'i'))
ORDER BY s.sequencename`,

	userDataTypes: `
SELECT d.domain_schema, d.domain_name, d.data_type,
       d.character_maximum_length,
       CASE WHEN d.data_type = 'numeric' THEN d.numeric_precision END,
       CASE WHEN d.data_type = 'numeric' THEN d.numeric_scale END,
       CASE WHEN t.typnotnull THEN 0 ELSE 1 END,
       d.domain_default
FROM information_schema.domains d
JOIN pg_namespace n ON n.nspname = d.domain_schema
JOIN pg_type t ON t.typnamespace = n.oid AND t.typname = d.domain_name
WHERE d.domain_schema = $1
ORDER BY d.domain_name`,

	tableTypes: `
SELECT n.nspname, t.typname, a.attname, format_type(a.atttypid, a.atttypmod),
       NULL::int, NULL::int, NULL::int,
       CASE WHEN a.attnotnull THEN 0 ELSE 1 END
FROM pg_type t
JOIN pg_namespace n ON n.oid = t.typnamespace
JOIN pg_class c ON c.oid = t.typrelid AND c.relkind = 'c'
JOIN pg_attribute a ON a.attrelid = c.oid AND a.attnum > 0 AND NOT a.attisdropped
WHERE n.nspname = $1
ORDER BY t.typname, a.attnum`,
}
