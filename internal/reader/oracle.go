package reader

// Oracle stores routine and package source per line in ALL_SOURCE, so
// they come through the sources query.
var oracleCatalog = &catalog{
	currentOwner: `SELECT USER FROM DUAL`,

	tables: `
SELECT t.OWNER, t.TABLE_NAME, c.COMMENTS
FROM ALL_TABLES t
LEFT JOIN ALL_TAB_COMMENTS c ON c.OWNER = t.OWNER AND c.TABLE_NAME = t.TABLE_NAME
WHERE t.OWNER = :1 AND t.NESTED = 'NO' AND t.SECONDARY = 'N' AND t.DROPPED = 'NO'
ORDER BY t.TABLE_NAME`,

	columns: `
SELECT c.OWNER, c.TABLE_NAME, c.COLUMN_NAME, c.DATA_TYPE,
       CASE WHEN c.DATA_TYPE IN ('VARCHAR2', 'NVARCHAR2', 'CHAR', 'NCHAR', 'RAW') THEN c.CHAR_LENGTH END,
       CASE WHEN c.DATA_TYPE = 'NUMBER' THEN c.DATA_PRECISION END,
       CASE WHEN c.DATA_TYPE = 'NUMBER' THEN c.DATA_SCALE END,
       CASE WHEN c.NULLABLE = 'Y' THEN 1 ELSE 0 END,
       c.DATA_DEFAULT,
       CASE WHEN c.IDENTITY_COLUMN = 'YES' THEN 1 ELSE 0 END,
       cc.COMMENTS
FROM ALL_TAB_COLUMNS c
JOIN ALL_TABLES t ON t.OWNER = c.OWNER AND t.TABLE_NAME = c.TABLE_NAME
LEFT JOIN ALL_COL_COMMENTS cc
  ON cc.OWNER = c.OWNER AND cc.TABLE_NAME = c.TABLE_NAME AND cc.COLUMN_NAME = c.COLUMN_NAME
WHERE c.OWNER = :1
ORDER BY c.TABLE_NAME, c.COLUMN_ID`,

	// system NOT NULL checks are column properties, not constraints
	constraints: []string{`
SELECT c.OWNER, c.TABLE_NAME, c.CONSTRAINT_NAME, c.CONSTRAINT_TYPE,
       cc.COLUMN_NAME, cc.POSITION, c.SEARCH_CONDITION_VC,
       r.OWNER, r.TABLE_NAME, rcc.COLUMN_NAME, c.DELETE_RULE, NULL
FROM ALL_CONSTRAINTS c
LEFT JOIN ALL_CONS_COLUMNS cc ON cc.OWNER = c.OWNER AND cc.CONSTRAINT_NAME = c.CONSTRAINT_NAME
LEFT JOIN ALL_CONSTRAINTS r ON r.OWNER = c.R_OWNER AND r.CONSTRAINT_NAME = c.R_CONSTRAINT_NAME
LEFT JOIN ALL_CONS_COLUMNS rcc
  ON rcc.OWNER = r.OWNER AND rcc.CONSTRAINT_NAME = r.CONSTRAINT_NAME AND rcc.POSITION = cc.POSITION
WHERE c.OWNER = :1 AND c.CONSTRAINT_TYPE IN ('P', 'U', 'C', 'R')
  AND c.TABLE_NAME NOT LIKE 'BIN$%'
  AND NOT (c.CONSTRAINT_TYPE = 'C' AND c.GENERATED = 'GENERATED NAME' AND c.SEARCH_CONDITION_VC LIKE '%IS NOT NULL')
ORDER BY c.TABLE_NAME, c.CONSTRAINT_NAME, cc.POSITION`},

	indexes: `
SELECT i.TABLE_OWNER, i.TABLE_NAME, i.INDEX_NAME, i.INDEX_TYPE,
       CASE WHEN i.UNIQUENESS = 'UNIQUE' THEN 1 ELSE 0 END,
       ic.COLUMN_NAME, ic.COLUMN_POSITION,
       CASE WHEN ic.DESCEND = 'DESC' THEN 1 ELSE 0 END
FROM ALL_INDEXES i
JOIN ALL_IND_COLUMNS ic ON ic.INDEX_OWNER = i.OWNER AND ic.INDEX_NAME = i.INDEX_NAME
WHERE i.TABLE_OWNER = :1 AND i.INDEX_TYPE <> 'LOB'
ORDER BY i.TABLE_NAME, i.INDEX_NAME, ic.COLUMN_POSITION`,

	triggers: `
SELECT OWNER, TABLE_NAME, TRIGGER_NAME, TRIGGER_BODY,
       CASE WHEN TRIGGER_TYPE LIKE 'BEFORE%' THEN 'BEFORE'
            WHEN TRIGGER_TYPE LIKE 'AFTER%' THEN 'AFTER'
            ELSE 'INSTEAD OF' END,
       TRIGGERING_EVENT
FROM ALL_TRIGGERS
WHERE OWNER = :1 AND BASE_OBJECT_TYPE = 'TABLE'
ORDER BY TABLE_NAME, TRIGGER_NAME`,

	views: `
SELECT OWNER, VIEW_NAME, TEXT
FROM ALL_VIEWS
WHERE OWNER = :1
ORDER BY VIEW_NAME`,

	sources: `
SELECT OWNER, NAME, TYPE, TEXT
FROM ALL_SOURCE
WHERE OWNER = :1 AND TYPE IN ('PROCEDURE', 'FUNCTION', 'PACKAGE', 'PACKAGE BODY')
ORDER BY NAME, TYPE, LINE`,

	sequences: `
SELECT SEQUENCE_OWNER, SEQUENCE_NAME, MIN_VALUE,
       CASE WHEN MAX_VALUE > 9223372036854775807 THEN NULL ELSE MAX_VALUE END,
       INCREMENT_BY
FROM ALL_SEQUENCES
WHERE SEQUENCE_OWNER = :1 AND SEQUENCE_NAME NOT LIKE 'ISEQ$$%'
ORDER BY SEQUENCE_NAME`,
}
