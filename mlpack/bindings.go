package mlpack

import (
	"maps"
	"slices"
)

// BindingInfo is the untyped description of a declared binding.
type BindingInfo struct {
	Name        string
	Symbol      string
	ModelType   string
	InputModel  string
	OutputModel string
	Outputs     []Output
	Required    []string
	Constraints []Constraint
	Incremental bool
}

var catalog = make(map[string]BindingInfo)

func declare[T any](spec *BindingSpec[T]) *BindingSpec[T] {
	catalog[spec.Name] = BindingInfo{
		Name:        spec.Name,
		Symbol:      spec.Symbol(),
		ModelType:   spec.Models.Name(),
		InputModel:  spec.InputModel,
		OutputModel: spec.OutputModel(),
		Outputs:     spec.Outputs,
		Required:    spec.Required,
		Constraints: spec.Constraints,
		Incremental: spec.Incremental,
	}
	return spec
}

// Bindings returns the names of every declared binding, sorted.
func Bindings() []string {
	return slices.Sorted(maps.Keys(catalog))
}

// LookupBinding returns the description of the named binding.
func LookupBinding(name string) (BindingInfo, bool) {
	info, ok := catalog[name]
	return info, ok
}

func exactlyOne(params ...string) Constraint {
	return Constraint{Kind: ExactlyOne, Params: params}
}

func atLeastOne(params ...string) Constraint {
	return Constraint{Kind: AtLeastOne, Params: params}
}

var (
	outputModel = Output{Name: "output_model", Kind: ParamKindModel}
	predictions = Output{Name: "predictions", Kind: ParamKindURow}
	probs       = Output{Name: "probabilities", Kind: ParamKindMatrix}
	distances   = Output{Name: "distances", Kind: ParamKindMatrix}
	neighbors   = Output{Name: "neighbors", Kind: ParamKindUMatrix}
	codes       = Output{Name: "codes", Kind: ParamKindMatrix}
	dictionary  = Output{Name: "dictionary", Kind: ParamKindMatrix}
)

// Classifiers. An input model passed without training data is only used for
// prediction and comes back unchanged under output_model.
var (
	AdaboostBinding = declare(&BindingSpec[AdaBoostModel]{
		Name:        "adaboost",
		Models:      AdaBoostModelType,
		InputModel:  "input_model",
		Outputs:     []Output{{"output", ParamKindURow}, outputModel, predictions, probs},
		Constraints: []Constraint{exactlyOne("training", "input_model")},
	})

	DecisionStumpBinding = declare(&BindingSpec[DSModel]{
		Name:        "decision_stump",
		Models:      DSModelType,
		InputModel:  "input_model",
		Outputs:     []Output{outputModel, predictions},
		Constraints: []Constraint{exactlyOne("training", "input_model")},
	})

	DecisionTreeBinding = declare(&BindingSpec[DecisionTreeModel]{
		Name:        "decision_tree",
		Models:      DecisionTreeModelType,
		InputModel:  "input_model",
		Outputs:     []Output{outputModel, predictions, probs},
		Constraints: []Constraint{exactlyOne("training", "input_model")},
	})

	// HoeffdingTreeBinding trains a given input model further on new data.
	HoeffdingTreeBinding = declare(&BindingSpec[HoeffdingTreeModel]{
		Name:        "hoeffding_tree",
		Models:      HoeffdingTreeModelType,
		InputModel:  "input_model",
		Outputs:     []Output{outputModel, predictions, probs},
		Constraints: []Constraint{atLeastOne("training", "input_model")},
		Incremental: true,
	})

	LinearSvmBinding = declare(&BindingSpec[LinearSVMModel]{
		Name:        "linear_svm",
		Models:      LinearSVMModelType,
		InputModel:  "input_model",
		Outputs:     []Output{outputModel, predictions, probs},
		Constraints: []Constraint{atLeastOne("training", "input_model")},
		Incremental: true,
	})

	LogisticRegressionBinding = declare(&BindingSpec[LogisticRegression]{
		Name:       "logistic_regression",
		Models:     LogisticRegressionType,
		InputModel: "input_model",
		Outputs: []Output{
			{"output", ParamKindURow},
			outputModel,
			{"output_probabilities", ParamKindMatrix},
			predictions,
			probs,
		},
		Constraints: []Constraint{atLeastOne("training", "input_model")},
		Incremental: true,
	})

	NbcBinding = declare(&BindingSpec[NBCModel]{
		Name:        "nbc",
		Models:      NBCModelType,
		InputModel:  "input_model",
		Outputs:     []Output{outputModel, predictions, probs},
		Constraints: []Constraint{atLeastOne("training", "input_model")},
		Incremental: true,
	})

	PerceptronBinding = declare(&BindingSpec[PerceptronModel]{
		Name:        "perceptron",
		Models:      PerceptronModelType,
		InputModel:  "input_model",
		Outputs:     []Output{outputModel, predictions},
		Constraints: []Constraint{atLeastOne("training", "input_model")},
		Incremental: true,
	})

	// RandomForestBinding adds trees to a given input model when warm_start is set.
	RandomForestBinding = declare(&BindingSpec[RandomForestModel]{
		Name:        "random_forest",
		Models:      RandomForestModelType,
		InputModel:  "input_model",
		Outputs:     []Output{outputModel, predictions, probs},
		Constraints: []Constraint{atLeastOne("training", "input_model")},
		Incremental: true,
	})

	SoftmaxRegressionBinding = declare(&BindingSpec[SoftmaxRegression]{
		Name:        "softmax_regression",
		Models:      SoftmaxRegressionType,
		InputModel:  "input_model",
		Outputs:     []Output{outputModel, predictions, probs},
		Constraints: []Constraint{atLeastOne("training", "input_model")},
		Incremental: true,
	})
)

// Regression.
var (
	BayesianLinearRegressionBinding = declare(&BindingSpec[BayesianLinearRegression]{
		Name:       "bayesian_linear_regression",
		Models:     BayesianLinearRegressionType,
		InputModel: "input_model",
		Outputs: []Output{
			outputModel,
			{"predictions", ParamKindMatrix},
			{"stds", ParamKindMatrix},
		},
		Constraints: []Constraint{exactlyOne("input", "input_model")},
	})

	LarsBinding = declare(&BindingSpec[LARS]{
		Name:        "lars",
		Models:      LARSType,
		InputModel:  "input_model",
		Outputs:     []Output{outputModel, {"output_predictions", ParamKindMatrix}},
		Constraints: []Constraint{exactlyOne("input", "input_model")},
	})

	LinearRegressionBinding = declare(&BindingSpec[LinearRegression]{
		Name:        "linear_regression",
		Models:      LinearRegressionType,
		InputModel:  "input_model",
		Outputs:     []Output{outputModel, {"output_predictions", ParamKindRow}},
		Constraints: []Constraint{exactlyOne("training", "input_model")},
	})
)

// Neighbor search. A given input model is reused as the search index.
var (
	ApproxKfnBinding = declare(&BindingSpec[ApproxKFNModel]{
		Name:        "approx_kfn",
		Models:      ApproxKFNModelType,
		InputModel:  "input_model",
		Outputs:     []Output{distances, neighbors, outputModel},
		Constraints: []Constraint{exactlyOne("reference", "input_model")},
	})

	FastmksBinding = declare(&BindingSpec[FastMKSModel]{
		Name:       "fastmks",
		Models:     FastMKSModelType,
		InputModel: "input_model",
		Outputs: []Output{
			{"indices", ParamKindUMatrix},
			{"kernels", ParamKindMatrix},
			outputModel,
		},
		Constraints: []Constraint{exactlyOne("reference", "input_model")},
	})

	KdeBinding = declare(&BindingSpec[KDEModel]{
		Name:        "kde",
		Models:      KDEModelType,
		InputModel:  "input_model",
		Outputs:     []Output{outputModel, {"predictions", ParamKindCol}},
		Constraints: []Constraint{exactlyOne("reference", "input_model")},
	})

	KfnBinding = declare(&BindingSpec[KFNModel]{
		Name:        "kfn",
		Models:      KFNModelType,
		InputModel:  "input_model",
		Outputs:     []Output{distances, neighbors, outputModel},
		Constraints: []Constraint{exactlyOne("reference", "input_model")},
	})

	KnnBinding = declare(&BindingSpec[KNNModel]{
		Name:        "knn",
		Models:      KNNModelType,
		InputModel:  "input_model",
		Outputs:     []Output{distances, neighbors, outputModel},
		Constraints: []Constraint{exactlyOne("reference", "input_model")},
	})

	KrannBinding = declare(&BindingSpec[RANNModel]{
		Name:        "krann",
		Models:      RANNModelType,
		InputModel:  "input_model",
		Outputs:     []Output{distances, neighbors, outputModel},
		Constraints: []Constraint{exactlyOne("reference", "input_model")},
	})

	LshBinding = declare(&BindingSpec[LSHSearch]{
		Name:        "lsh",
		Models:      LSHSearchType,
		InputModel:  "input_model",
		Outputs:     []Output{distances, neighbors, outputModel},
		Constraints: []Constraint{exactlyOne("reference", "input_model")},
	})

	RangeSearchBinding = declare(&BindingSpec[RSModel]{
		Name:       "range_search",
		Models:     RSModelType,
		InputModel: "input_model",
		Outputs: []Output{
			{"distances_file", ParamKindString},
			{"neighbors_file", ParamKindString},
			outputModel,
		},
		Constraints: []Constraint{exactlyOne("reference", "input_model")},
	})
)

// Density estimation, mixtures and hidden Markov models.
var (
	DetBinding = declare(&BindingSpec[DTree]{
		Name:       "det",
		Models:     DTreeType,
		InputModel: "input_model",
		Outputs: []Output{
			outputModel,
			{"tag_counters_file", ParamKindString},
			{"tag_file", ParamKindString},
			{"test_set_estimates", ParamKindMatrix},
			{"training_set_estimates", ParamKindMatrix},
			{"vi", ParamKindMatrix},
		},
		Constraints: []Constraint{exactlyOne("training", "input_model")},
	})

	GmmGenerateBinding = declare(&BindingSpec[GMM]{
		Name:       "gmm_generate",
		Models:     GMMType,
		InputModel: "input_model",
		Outputs:    []Output{{"output", ParamKindMatrix}},
		Required:   []string{"input_model", "samples"},
	})

	GmmProbabilityBinding = declare(&BindingSpec[GMM]{
		Name:       "gmm_probability",
		Models:     GMMType,
		InputModel: "input_model",
		Outputs:    []Output{{"output", ParamKindMatrix}},
		Required:   []string{"input", "input_model"},
	})

	// GmmTrainBinding starts from input_model when one is given.
	GmmTrainBinding = declare(&BindingSpec[GMM]{
		Name:       "gmm_train",
		Models:     GMMType,
		InputModel: "input_model",
		Outputs:    []Output{outputModel},
		Required:   []string{"gaussians", "input"},
	})

	HmmGenerateBinding = declare(&BindingSpec[HMMModel]{
		Name:       "hmm_generate",
		Models:     HMMModelType,
		InputModel: "model",
		Outputs:    []Output{{"output", ParamKindMatrix}, {"state", ParamKindUMatrix}},
		Required:   []string{"length", "model"},
	})

	HmmLoglikBinding = declare(&BindingSpec[HMMModel]{
		Name:       "hmm_loglik",
		Models:     HMMModelType,
		InputModel: "input_model",
		Outputs:    []Output{{"log_likelihood", ParamKindDouble}},
		Required:   []string{"input", "input_model"},
	})

	// HmmTrainBinding continues training a given input model.
	HmmTrainBinding = declare(&BindingSpec[HMMModel]{
		Name:        "hmm_train",
		Models:      HMMModelType,
		InputModel:  "input_model",
		Outputs:     []Output{outputModel},
		Required:    []string{"input_file"},
		Incremental: true,
	})

	HmmViterbiBinding = declare(&BindingSpec[HMMModel]{
		Name:       "hmm_viterbi",
		Models:     HMMModelType,
		InputModel: "input_model",
		Outputs:    []Output{{"output", ParamKindUMatrix}},
		Required:   []string{"input", "input_model"},
	})
)

// Recommendation, coding and preprocessing.
var (
	CfBinding = declare(&BindingSpec[CFModel]{
		Name:        "cf",
		Models:      CFModelType,
		InputModel:  "input_model",
		Outputs:     []Output{{"output", ParamKindUMatrix}, outputModel},
		Constraints: []Constraint{exactlyOne("training", "input_model")},
	})

	LocalCoordinateCodingBinding = declare(&BindingSpec[LocalCoordinateCoding]{
		Name:        "local_coordinate_coding",
		Models:      LocalCoordinateCodingType,
		InputModel:  "input_model",
		Outputs:     []Output{codes, dictionary, outputModel},
		Constraints: []Constraint{exactlyOne("training", "input_model")},
	})

	PreprocessScaleBinding = declare(&BindingSpec[ScalingModel]{
		Name:       "preprocess_scale",
		Models:     ScalingModelType,
		InputModel: "input_model",
		Outputs:    []Output{{"output", ParamKindMatrix}, outputModel},
		Required:   []string{"input"},
	})

	SparseCodingBinding = declare(&BindingSpec[SparseCoding]{
		Name:        "sparse_coding",
		Models:      SparseCodingType,
		InputModel:  "input_model",
		Outputs:     []Output{codes, dictionary, outputModel},
		Constraints: []Constraint{exactlyOne("training", "input_model")},
	})
)

// TestGoBindingBinding is mlpack's binding self-test: every output is a
// transformed copy of the matching input.
var TestGoBindingBinding = declare(&BindingSpec[GaussianKernel]{
	Name:       "test_go_binding",
	Models:     GaussianKernelType,
	InputModel: "model_in",
	Outputs: []Output{
		{"col_out", ParamKindCol},
		{"double_out", ParamKindDouble},
		{"int_out", ParamKindInt},
		{"matrix_and_info_out", ParamKindMatrix},
		{"matrix_out", ParamKindMatrix},
		{"model_bw_out", ParamKindDouble},
		{"model_out", ParamKindModel},
		{"row_out", ParamKindRow},
		{"str_vector_out", ParamKindStringSlice},
		{"string_out", ParamKindString},
		{"ucol_out", ParamKindUCol},
		{"umatrix_out", ParamKindUMatrix},
		{"urow_out", ParamKindURow},
		{"vector_out", ParamKindIntSlice},
	},
	Required: []string{"double_in", "int_in", "string_in"},
})
