package params

// Config is the typed parameter surface of the nf-core/funcscan pipeline.
// Fields are declared in the order their flags are emitted on the command
// line; nil means the parameter is absent and produces no flag.
type Config struct {
	Input           string  `param:"input,file,required" yaml:"input"`
	Outdir          string  `param:"outdir,dir,required" yaml:"outdir"`
	Email           *string `param:"email" yaml:"email"`
	MultiqcTitle    *string `param:"multiqc_title" yaml:"multiqc_title"`
	RunAmpScreening *bool   `param:"run_amp_screening" yaml:"run_amp_screening"`
	RunArgScreening *bool   `param:"run_arg_screening" yaml:"run_arg_screening"`
	RunBgcScreening *bool   `param:"run_bgc_screening" yaml:"run_bgc_screening"`
	AnnotationTool  *string `param:"annotation_tool" yaml:"annotation_tool"`
	SaveAnnotations *bool   `param:"save_annotations" yaml:"save_annotations"`

	// Annotation: Bakta.
	AnnotationBaktaDBLocalpath         *string `param:"annotation_bakta_db_localpath" yaml:"annotation_bakta_db_localpath"`
	AnnotationBaktaDBDownloadtype      *string `param:"annotation_bakta_db_downloadtype" yaml:"annotation_bakta_db_downloadtype"`
	AnnotationBaktaMincontiglen        *int    `param:"annotation_bakta_mincontiglen" yaml:"annotation_bakta_mincontiglen"`
	AnnotationBaktaTranslationtable    *int    `param:"annotation_bakta_translationtable" yaml:"annotation_bakta_translationtable"`
	AnnotationBaktaGram                *string `param:"annotation_bakta_gram" yaml:"annotation_bakta_gram"`
	AnnotationBaktaComplete            *bool   `param:"annotation_bakta_complete" yaml:"annotation_bakta_complete"`
	AnnotationBaktaRenamecontigheaders *bool   `param:"annotation_bakta_renamecontigheaders" yaml:"annotation_bakta_renamecontigheaders"`
	AnnotationBaktaCompliant           *bool   `param:"annotation_bakta_compliant" yaml:"annotation_bakta_compliant"`
	AnnotationBaktaTrna                *bool   `param:"annotation_bakta_trna" yaml:"annotation_bakta_trna"`
	AnnotationBaktaTmrna               *bool   `param:"annotation_bakta_tmrna" yaml:"annotation_bakta_tmrna"`
	AnnotationBaktaRrna                *bool   `param:"annotation_bakta_rrna" yaml:"annotation_bakta_rrna"`
	AnnotationBaktaNcrna               *bool   `param:"annotation_bakta_ncrna" yaml:"annotation_bakta_ncrna"`
	AnnotationBaktaNcrnaregion         *bool   `param:"annotation_bakta_ncrnaregion" yaml:"annotation_bakta_ncrnaregion"`
	AnnotationBaktaCrispr              *bool   `param:"annotation_bakta_crispr" yaml:"annotation_bakta_crispr"`
	AnnotationBaktaSkipcds             *bool   `param:"annotation_bakta_skipcds" yaml:"annotation_bakta_skipcds"`
	AnnotationBaktaPseudo              *bool   `param:"annotation_bakta_pseudo" yaml:"annotation_bakta_pseudo"`
	AnnotationBaktaSkipsorf            *bool   `param:"annotation_bakta_skipsorf" yaml:"annotation_bakta_skipsorf"`
	AnnotationBaktaGap                 *bool   `param:"annotation_bakta_gap" yaml:"annotation_bakta_gap"`
	AnnotationBaktaOri                 *bool   `param:"annotation_bakta_ori" yaml:"annotation_bakta_ori"`
	AnnotationBaktaActivatePlot        *bool   `param:"annotation_bakta_activate_plot" yaml:"annotation_bakta_activate_plot"`

	// Annotation: Prokka.
	AnnotationProkkaSinglemode          *bool    `param:"annotation_prokka_singlemode" yaml:"annotation_prokka_singlemode"`
	AnnotationProkkaRawproduct          *bool    `param:"annotation_prokka_rawproduct" yaml:"annotation_prokka_rawproduct"`
	AnnotationProkkaKingdom             *string  `param:"annotation_prokka_kingdom" yaml:"annotation_prokka_kingdom"`
	AnnotationProkkaGcode               *int     `param:"annotation_prokka_gcode" yaml:"annotation_prokka_gcode"`
	AnnotationProkkaMincontiglen        *int     `param:"annotation_prokka_mincontiglen" yaml:"annotation_prokka_mincontiglen"`
	AnnotationProkkaEvalue              *float64 `param:"annotation_prokka_evalue" yaml:"annotation_prokka_evalue"`
	AnnotationProkkaCoverage            *int     `param:"annotation_prokka_coverage" yaml:"annotation_prokka_coverage"`
	AnnotationProkkaCdsrnaolap          *bool    `param:"annotation_prokka_cdsrnaolap" yaml:"annotation_prokka_cdsrnaolap"`
	AnnotationProkkaRnammer             *bool    `param:"annotation_prokka_rnammer" yaml:"annotation_prokka_rnammer"`
	AnnotationProkkaCompliant           *bool    `param:"annotation_prokka_compliant" yaml:"annotation_prokka_compliant"`
	AnnotationProkkaAddgenes            *bool    `param:"annotation_prokka_addgenes" yaml:"annotation_prokka_addgenes"`
	AnnotationProkkaRetaincontigheaders *bool    `param:"annotation_prokka_retaincontigheaders" yaml:"annotation_prokka_retaincontigheaders"`

	// Annotation: Prodigal.
	AnnotationProdigalSinglemode *bool `param:"annotation_prodigal_singlemode" yaml:"annotation_prodigal_singlemode"`
	AnnotationProdigalClosed     *bool `param:"annotation_prodigal_closed" yaml:"annotation_prodigal_closed"`
	AnnotationProdigalTranstable *int  `param:"annotation_prodigal_transtable" yaml:"annotation_prodigal_transtable"`
	AnnotationProdigalForcenonsd *bool `param:"annotation_prodigal_forcenonsd" yaml:"annotation_prodigal_forcenonsd"`

	// Annotation: Pyrodigal.
	AnnotationPyrodigalSinglemode *bool `param:"annotation_pyrodigal_singlemode" yaml:"annotation_pyrodigal_singlemode"`
	AnnotationPyrodigalClosed     *bool `param:"annotation_pyrodigal_closed" yaml:"annotation_pyrodigal_closed"`
	AnnotationPyrodigalTranstable *int  `param:"annotation_pyrodigal_transtable" yaml:"annotation_pyrodigal_transtable"`
	AnnotationPyrodigalForcenonsd *bool `param:"annotation_pyrodigal_forcenonsd" yaml:"annotation_pyrodigal_forcenonsd"`
	SaveDatabases                 *bool `param:"save_databases" yaml:"save_databases"`

	// Antimicrobial peptide screening.
	AmpSkipAmplify             *bool    `param:"amp_skip_amplify" yaml:"amp_skip_amplify"`
	AmpSkipAmpir               *bool    `param:"amp_skip_ampir" yaml:"amp_skip_ampir"`
	AmpAmpirModel              *string  `param:"amp_ampir_model" yaml:"amp_ampir_model"`
	AmpAmpirMinlength          *int     `param:"amp_ampir_minlength" yaml:"amp_ampir_minlength"`
	AmpSkipHmmsearch           *bool    `param:"amp_skip_hmmsearch" yaml:"amp_skip_hmmsearch"`
	AmpHmmsearchModels         *string  `param:"amp_hmmsearch_models" yaml:"amp_hmmsearch_models"`
	AmpHmmsearchSavealignments *bool    `param:"amp_hmmsearch_savealignments" yaml:"amp_hmmsearch_savealignments"`
	AmpHmmsearchSavetargets    *bool    `param:"amp_hmmsearch_savetargets" yaml:"amp_hmmsearch_savetargets"`
	AmpHmmsearchSavedomains    *bool    `param:"amp_hmmsearch_savedomains" yaml:"amp_hmmsearch_savedomains"`
	AmpSkipMacrel              *bool    `param:"amp_skip_macrel" yaml:"amp_skip_macrel"`
	AmpAmpcombiDB              *string  `param:"amp_ampcombi_db" yaml:"amp_ampcombi_db"`
	AmpAmpcombiCutoff          *float64 `param:"amp_ampcombi_cutoff" yaml:"amp_ampcombi_cutoff"`

	// Antibiotic resistance gene screening.
	ArgSkipAmrfinderplus             *bool    `param:"arg_skip_amrfinderplus" yaml:"arg_skip_amrfinderplus"`
	ArgAmrfinderplusDB               *string  `param:"arg_amrfinderplus_db" yaml:"arg_amrfinderplus_db"`
	ArgAmrfinderplusIdentmin         *float64 `param:"arg_amrfinderplus_identmin" yaml:"arg_amrfinderplus_identmin"`
	ArgAmrfinderplusCoveragemin      *float64 `param:"arg_amrfinderplus_coveragemin" yaml:"arg_amrfinderplus_coveragemin"`
	ArgAmrfinderplusTranslationtable *int     `param:"arg_amrfinderplus_translationtable" yaml:"arg_amrfinderplus_translationtable"`
	ArgAmrfinderplusPlus             *bool    `param:"arg_amrfinderplus_plus" yaml:"arg_amrfinderplus_plus"`
	ArgAmrfinderplusName             *bool    `param:"arg_amrfinderplus_name" yaml:"arg_amrfinderplus_name"`
	ArgSkipDeeparg                   *bool    `param:"arg_skip_deeparg" yaml:"arg_skip_deeparg"`
	ArgDeepargData                   *string  `param:"arg_deeparg_data" yaml:"arg_deeparg_data"`
	ArgDeepargDataVersion            *int     `param:"arg_deeparg_data_version" yaml:"arg_deeparg_data_version"`
	ArgDeepargModel                  *string  `param:"arg_deeparg_model" yaml:"arg_deeparg_model"`
	ArgDeepargMinprob                *float64 `param:"arg_deeparg_minprob" yaml:"arg_deeparg_minprob"`
	ArgDeepargAlignmentevalue        *float64 `param:"arg_deeparg_alignmentevalue" yaml:"arg_deeparg_alignmentevalue"`
	ArgDeepargAlignmentidentity      *int     `param:"arg_deeparg_alignmentidentity" yaml:"arg_deeparg_alignmentidentity"`
	ArgDeepargAlignmentoverlap       *float64 `param:"arg_deeparg_alignmentoverlap" yaml:"arg_deeparg_alignmentoverlap"`
	ArgDeepargNumalignmentsperentry  *int     `param:"arg_deeparg_numalignmentsperentry" yaml:"arg_deeparg_numalignmentsperentry"`
	ArgSkipFargene                   *bool    `param:"arg_skip_fargene" yaml:"arg_skip_fargene"`
	ArgFargeneHmmmodel               *string  `param:"arg_fargene_hmmmodel" yaml:"arg_fargene_hmmmodel"`
	ArgFargeneSavetmpfiles           *bool    `param:"arg_fargene_savetmpfiles" yaml:"arg_fargene_savetmpfiles"`
	ArgFargeneScore                  *float64 `param:"arg_fargene_score" yaml:"arg_fargene_score"`
	ArgFargeneMinorflength           *int     `param:"arg_fargene_minorflength" yaml:"arg_fargene_minorflength"`
	ArgFargeneOrffinder              *bool    `param:"arg_fargene_orffinder" yaml:"arg_fargene_orffinder"`
	ArgFargeneTranslationformat      *string  `param:"arg_fargene_translationformat" yaml:"arg_fargene_translationformat"`
	ArgSkipRgi                       *bool    `param:"arg_skip_rgi" yaml:"arg_skip_rgi"`
	ArgRgiSavejson                   *bool    `param:"arg_rgi_savejson" yaml:"arg_rgi_savejson"`
	ArgRgiSavetmpfiles               *bool    `param:"arg_rgi_savetmpfiles" yaml:"arg_rgi_savetmpfiles"`
	ArgRgiAlignmenttool              *string  `param:"arg_rgi_alignmenttool" yaml:"arg_rgi_alignmenttool"`
	ArgRgiIncludeloose               *bool    `param:"arg_rgi_includeloose" yaml:"arg_rgi_includeloose"`
	ArgRgiExcludenudge               *bool    `param:"arg_rgi_excludenudge" yaml:"arg_rgi_excludenudge"`
	ArgRgiLowquality                 *bool    `param:"arg_rgi_lowquality" yaml:"arg_rgi_lowquality"`
	ArgRgiData                       *string  `param:"arg_rgi_data" yaml:"arg_rgi_data"`
	ArgSkipAbricate                  *bool    `param:"arg_skip_abricate" yaml:"arg_skip_abricate"`
	ArgAbricateDB                    *string  `param:"arg_abricate_db" yaml:"arg_abricate_db"`
	ArgAbricateMinid                 *int     `param:"arg_abricate_minid" yaml:"arg_abricate_minid"`
	ArgAbricateMincov                *int     `param:"arg_abricate_mincov" yaml:"arg_abricate_mincov"`

	// Biosynthetic gene cluster screening.
	BgcSkipAntismash                   *bool    `param:"bgc_skip_antismash" yaml:"bgc_skip_antismash"`
	BgcAntismashDatabases              *string  `param:"bgc_antismash_databases" yaml:"bgc_antismash_databases"`
	BgcAntismashInstallationdirectory  *string  `param:"bgc_antismash_installationdirectory" yaml:"bgc_antismash_installationdirectory"`
	BgcAntismashSampleminlength        *int     `param:"bgc_antismash_sampleminlength" yaml:"bgc_antismash_sampleminlength"`
	BgcAntismashContigminlength        *int     `param:"bgc_antismash_contigminlength" yaml:"bgc_antismash_contigminlength"`
	BgcAntismashCbgeneral              *bool    `param:"bgc_antismash_cbgeneral" yaml:"bgc_antismash_cbgeneral"`
	BgcAntismashCbknownclusters        *bool    `param:"bgc_antismash_cbknownclusters" yaml:"bgc_antismash_cbknownclusters"`
	BgcAntismashCbsubclusters          *bool    `param:"bgc_antismash_cbsubclusters" yaml:"bgc_antismash_cbsubclusters"`
	BgcAntismashCcmibig                *bool    `param:"bgc_antismash_ccmibig" yaml:"bgc_antismash_ccmibig"`
	BgcAntismashSmcogtrees             *bool    `param:"bgc_antismash_smcogtrees" yaml:"bgc_antismash_smcogtrees"`
	BgcAntismashHmmdetectionstrictness *string  `param:"bgc_antismash_hmmdetectionstrictness" yaml:"bgc_antismash_hmmdetectionstrictness"`
	BgcAntismashTaxon                  *string  `param:"bgc_antismash_taxon" yaml:"bgc_antismash_taxon"`
	BgcSkipDeepbgc                     *bool    `param:"bgc_skip_deepbgc" yaml:"bgc_skip_deepbgc"`
	BgcDeepbgcDatabase                 *string  `param:"bgc_deepbgc_database" yaml:"bgc_deepbgc_database"`
	BgcDeepbgcScore                    *float64 `param:"bgc_deepbgc_score" yaml:"bgc_deepbgc_score"`
	BgcDeepbgcProdigalsinglemode       *bool    `param:"bgc_deepbgc_prodigalsinglemode" yaml:"bgc_deepbgc_prodigalsinglemode"`
	BgcDeepbgcMergemaxproteingap       *int     `param:"bgc_deepbgc_mergemaxproteingap" yaml:"bgc_deepbgc_mergemaxproteingap"`
	BgcDeepbgcMergemaxnuclgap          *int     `param:"bgc_deepbgc_mergemaxnuclgap" yaml:"bgc_deepbgc_mergemaxnuclgap"`
	BgcDeepbgcMinnucl                  *int     `param:"bgc_deepbgc_minnucl" yaml:"bgc_deepbgc_minnucl"`
	BgcDeepbgcMinproteins              *int     `param:"bgc_deepbgc_minproteins" yaml:"bgc_deepbgc_minproteins"`
	BgcDeepbgcMindomains               *int     `param:"bgc_deepbgc_mindomains" yaml:"bgc_deepbgc_mindomains"`
	BgcDeepbgcMinbiodomains            *int     `param:"bgc_deepbgc_minbiodomains" yaml:"bgc_deepbgc_minbiodomains"`
	BgcDeepbgcClassifierscore          *float64 `param:"bgc_deepbgc_classifierscore" yaml:"bgc_deepbgc_classifierscore"`
	BgcSkipGecco                       *bool    `param:"bgc_skip_gecco" yaml:"bgc_skip_gecco"`
	BgcGeccoMask                       *bool    `param:"bgc_gecco_mask" yaml:"bgc_gecco_mask"`
	BgcGeccoCds                        *int     `param:"bgc_gecco_cds" yaml:"bgc_gecco_cds"`
	BgcGeccoPfilter                    *float64 `param:"bgc_gecco_pfilter" yaml:"bgc_gecco_pfilter"`
	BgcGeccoThreshold                  *float64 `param:"bgc_gecco_threshold" yaml:"bgc_gecco_threshold"`
	BgcGeccoEdgedistance               *int     `param:"bgc_gecco_edgedistance" yaml:"bgc_gecco_edgedistance"`
	BgcSkipHmmsearch                   *bool    `param:"bgc_skip_hmmsearch" yaml:"bgc_skip_hmmsearch"`
	BgcHmmsearchModels                 *string  `param:"bgc_hmmsearch_models" yaml:"bgc_hmmsearch_models"`
	BgcHmmsearchSavealignments         *bool    `param:"bgc_hmmsearch_savealignments" yaml:"bgc_hmmsearch_savealignments"`
	BgcHmmsearchSavetargets            *bool    `param:"bgc_hmmsearch_savetargets" yaml:"bgc_hmmsearch_savetargets"`
	BgcHmmsearchSavedomains            *bool    `param:"bgc_hmmsearch_savedomains" yaml:"bgc_hmmsearch_savedomains"`

	// Reporting.
	ArgHamronizationSummarizeformat *string `param:"arg_hamronization_summarizeformat" yaml:"arg_hamronization_summarizeformat"`
	MultiqcMethodsDescription       *string `param:"multiqc_methods_description" yaml:"multiqc_methods_description"`

	// floatText keeps float values as the user wrote them, keyed by param name.
	floatText map[string]string
}

// Defaults returns a Config holding the pipeline's declared defaults.
// Input and Outdir are left empty.
func Defaults() *Config {
	return &Config{
		AnnotationTool:                     ptr("pyrodigal"),
		AnnotationBaktaMincontiglen:        ptr(1),
		AnnotationBaktaTranslationtable:    ptr(11),
		AnnotationBaktaGram:                ptr("?"),
		AnnotationProkkaKingdom:            ptr("Bacteria"),
		AnnotationProkkaGcode:              ptr(11),
		AnnotationProkkaMincontiglen:       ptr(1),
		AnnotationProkkaEvalue:             ptr(1e-06),
		AnnotationProkkaCoverage:           ptr(80),
		AnnotationProdigalTranstable:       ptr(11),
		AnnotationPyrodigalTranstable:      ptr(11),
		AmpAmpirModel:                      ptr("precursor"),
		AmpAmpirMinlength:                  ptr(10),
		AmpAmpcombiCutoff:                  ptr(0.4),
		ArgAmrfinderplusIdentmin:           ptr(-1.0),
		ArgAmrfinderplusCoveragemin:        ptr(0.5),
		ArgAmrfinderplusTranslationtable:   ptr(11),
		ArgDeepargDataVersion:              ptr(2),
		ArgDeepargModel:                    ptr("LS"),
		ArgDeepargMinprob:                  ptr(0.8),
		ArgDeepargAlignmentevalue:          ptr(1e-10),
		ArgDeepargAlignmentidentity:        ptr(50),
		ArgDeepargAlignmentoverlap:         ptr(0.8),
		ArgDeepargNumalignmentsperentry:    ptr(1000),
		ArgFargeneHmmmodel:                 ptr("class_a,class_b_1_2,class_b_3,class_c,class_d_1,class_d_2,qnr,tet_efflux,tet_rpg,tet_enzyme"),
		ArgFargeneMinorflength:             ptr(90),
		ArgFargeneTranslationformat:        ptr("pearson"),
		ArgRgiAlignmenttool:                ptr("BLAST"),
		ArgRgiIncludeloose:                 ptr(true),
		ArgRgiExcludenudge:                 ptr(true),
		ArgRgiData:                         ptr("NA"),
		ArgAbricateDB:                      ptr("ncbi"),
		ArgAbricateMinid:                   ptr(80),
		ArgAbricateMincov:                  ptr(80),
		BgcAntismashSampleminlength:        ptr(1000),
		BgcAntismashContigminlength:        ptr(1000),
		BgcAntismashHmmdetectionstrictness: ptr("relaxed"),
		BgcAntismashTaxon:                  ptr("bacteria"),
		BgcDeepbgcScore:                    ptr(0.5),
		BgcDeepbgcMergemaxproteingap:       ptr(0),
		BgcDeepbgcMergemaxnuclgap:          ptr(0),
		BgcDeepbgcMinnucl:                  ptr(1),
		BgcDeepbgcMinproteins:              ptr(1),
		BgcDeepbgcMindomains:               ptr(1),
		BgcDeepbgcMinbiodomains:            ptr(0),
		BgcDeepbgcClassifierscore:          ptr(0.5),
		BgcGeccoCds:                        ptr(3),
		BgcGeccoPfilter:                    ptr(1e-09),
		BgcGeccoThreshold:                  ptr(0.8),
		BgcGeccoEdgedistance:               ptr(0),
		ArgHamronizationSummarizeformat:    ptr("tsv"),
	}
}

func ptr[T any](v T) *T {
	return &v
}
