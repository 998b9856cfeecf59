// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package plugins

import (
	"github.com/AleutianAI/beamtools/services/pipeline"
)

// BaseReconTools describes the parameters shared by all reconstruction
// modules: rotation centre handling, padding and value clipping.
func BaseReconTools() pipeline.Descriptor {
	return pipeline.Descriptor{
		Class:    "BaseReconTools",
		Synopsis: "Base class for reconstruction plugins.",
		Parameters: `
centre_of_rotation:
    visibility: basic
    dtype: float
    description: Centre of rotation to use for the reconstruction.
    default: 0.0

init_vol:
    visibility: advanced
    dtype: str
    description: Dataset to use as an initial volume for the reconstruction.
    default: None

log:
    visibility: advanced
    dtype: bool
    description:
        summary: Take the log of the data before reconstruction.
        verbose: Should be set to false if PaganinFilter is set beforehand.
    default: true

preview:
    visibility: advanced
    dtype: preview
    description: A slice list of required frames.
    default: []

force_zero:
    visibility: intermediate
    dtype: list
    description: Set any values in the reconstructed image outside of this
        range to zero.
    default: [None, None]

ratio:
    visibility: intermediate
    dtype: float
    description: Ratio of the masks diameter in pixels to the smallest edge
        size along given axis.
    default: 0.95

log_func:
    visibility: advanced
    dtype: str
    description: Override the default log function.
    default: np.nan_to_num(-np.log(sino))

vol_shape:
    visibility: intermediate
    dtype: str
    description:
        summary: Override the size of the reconstructed volume.
        verbose: When fixed, the size of the reconstruction volume is
            based on the size of the sinogram width. This may be
            overridden with an integer value.
    default: fixed
`,
	}
}

// AstraReconGpuTools describes the GPU reconstruction module backed by the
// ASTRA toolbox. The iteration count and filter parameters depend on the
// chosen algorithm, so their defaults and display follow it.
func AstraReconGpuTools() pipeline.Descriptor {
	return pipeline.Descriptor{
		Class:      "AstraReconGpuTools",
		Synopsis:   "A GPU reconstruction plugin that uses the ASTRA toolbox.",
		ModulePath: "/plugins/reconstructions/astra_recons/astra_recon_gpu",
		Parameters: `
algorithm:
    visibility: intermediate
    dtype: str
    description:
        summary: The reconstruction algorithm.
        options:
            FBP_CUDA: Filtered backprojection.
            SIRT_CUDA: Simultaneous iterative reconstruction technique.
            CGLS_CUDA: Conjugate gradient least squares.
    options: [FBP_CUDA, SIRT_CUDA, CGLS_CUDA]
    default: FBP_CUDA

n_iterations:
    visibility: basic
    dtype: int
    description: The number of iterations for the chosen algorithm.
    default:
        algorithm:
            FBP_CUDA: 1
            SIRT_CUDA: 100
            CGLS_CUDA: 20
    dependency:
        algorithm: [SIRT_CUDA, CGLS_CUDA]

FBP_filter:
    visibility: intermediate
    dtype: str
    description: The FBP reconstruction filter type.
    options: [none, ram-lak, shepp-logan, cosine, hamming, hann]
    default: ram-lak
    dependency:
        algorithm: [FBP_CUDA]

res_norm:
    visibility: intermediate
    dtype: bool
    description: Output the residual norm at each iteration.
    default: false
    dependency:
        algorithm: [SIRT_CUDA, CGLS_CUDA]

outer_pad:
    visibility: intermediate
    dtype: float
    description: Pad the sinogram width to fill the reconstructed volume
        for asymmetric problems.
    default: 2.1
`,
		Citations: []pipeline.CitationText{
			{
				Method: "process_frames",
				Text: `The tomography reconstruction algorithm used in this processing pipeline is part of the ASTRA Toolbox.

bibtex:
@article{van2016fast,
    title={Fast and flexible X-ray tomography using the ASTRA toolbox},
    author={Van Aarle, Wim and Palenstijn, Willem Jan and Cant, Jeroen and Janssens, Eline and Bleichrodt, Folkert and Dabravolski, Andrei and De Beenhouwer, Jan and Batenburg, K Joost and Sijbers, Jan},
    journal={Optics express},
    volume={24},
    number={22},
    pages={25129--25147},
    year={2016},
    publisher={Optical Society of America}
}

endnote:
%0 Journal Article
%T Fast and flexible X-ray tomography using the ASTRA toolbox
%A Van Aarle, Wim
%A Palenstijn, Willem Jan
%A Cant, Jeroen
%A Janssens, Eline
%A Bleichrodt, Folkert
%A Dabravolski, Andrei
%A De Beenhouwer, Jan
%A Batenburg, K Joost
%A Sijbers, Jan
%J Optics express
%V 24
%N 22
%P 25129-25147
%D 2016
%I Optical Society of America
`,
			},
			{
				Method: "astra_setup",
				Text: `The ASTRA toolbox provides GPU-accelerated tomographic projection and backprojection operators.

bibtex:
@article{van2015astra,
    title={The ASTRA Toolbox: A platform for advanced algorithm development in electron tomography},
    author={Van Aarle, Wim and Palenstijn, Willem Jan and De Beenhouwer, Jan and Altantzis, Thomas and Bals, Sara and Batenburg, K Joost and Sijbers, Jan},
    journal={Ultramicroscopy},
    volume={157},
    pages={35--47},
    year={2015},
    publisher={Elsevier}
}

endnote:
%0 Journal Article
%T The ASTRA Toolbox: A platform for advanced algorithm development in electron tomography
%A Van Aarle, Wim
%A Palenstijn, Willem Jan
%A De Beenhouwer, Jan
%A Altantzis, Thomas
%A Bals, Sara
%A Batenburg, K Joost
%A Sijbers, Jan
%J Ultramicroscopy
%V 157
%P 35-47
%D 2015
%I Elsevier
`,
			},
		},
	}
}
